// Copyright 2026, the lcrscan contributors.

// Package dispatch implements the bounded worker pool that drives the LCR
// engine one record at a time, following the reference project's
// semaphore-channel concurrency idiom (the `limit := make(chan bool,
// concurrency)` pattern in muscato_confirm.go and muscato_screen.go),
// adapted to submit one goroutine per FASTA record instead of per
// candidate match, and to fan results into a single mutex-guarded writer
// instead of a funnel goroutine.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/kshedden/lcrscan/engine"
	"github.com/kshedden/lcrscan/fasta"
	"github.com/kshedden/lcrscan/report"
)

// backpressureBound is the multiple of worker count at which the
// submitter begins throttling new record submissions, per §5.
const backpressureBound = 4

// backpressurePoll is how long the submitter sleeps between checks while
// throttled.
const backpressurePoll = 2 * time.Millisecond

// Discoverer is satisfied by *engine.Engine. Run takes this interface
// rather than the concrete type so tests can substitute a discoverer
// that panics on demand, to exercise the pool's panic-recovery path.
type Discoverer interface {
	Discover(name string, bases []byte) []engine.Interval
}

// Run reads records from in, dispatches each to the engine on its own
// goroutine (bounded by threads concurrently running), and appends each
// record's merged intervals to w as a single locked block. It returns
// once every submitted record has completed, or the context is
// cancelled.
func Run(ctx context.Context, in <-chan fasta.Record, threads int, eng Discoverer, w *report.Writer, logger *log.Logger, verbose bool) error {

	if threads < 1 {
		threads = 1
	}

	runID := uuid.New()
	logger.Printf("dispatch run %s starting with %d worker(s)", runID, threads)

	var wg sync.WaitGroup

	// sem bounds the number of records actually being processed at
	// once to threads; queued tracks submitted-but-not-yet-completed
	// tasks (running or waiting on sem) for the backpressure check,
	// which per §5 trips at 4x the worker count, not at the worker
	// count itself.
	sem := make(chan struct{}, threads)
	var queued int64

	var nrec int64
	start := time.Now()

recordLoop:
	for {
		select {
		case <-ctx.Done():
			break recordLoop
		case rec, ok := <-in:
			if !ok {
				break recordLoop
			}

			for atomic.LoadInt64(&queued) >= backpressureBound*int64(threads) {
				time.Sleep(backpressurePoll)
			}

			atomic.AddInt64(&queued, 1)
			wg.Add(1)
			nrec++
			n := nrec

			go func(rec fasta.Record, n int64) {
				defer wg.Done()
				defer atomic.AddInt64(&queued, -1)
				defer func() {
					if r := recover(); r != nil {
						logger.Printf("run %s: record %q panicked, dropped: %v", runID, rec.Name, r)
					}
				}()

				sem <- struct{}{}
				defer func() { <-sem }()

				t0 := time.Now()
				intervals := eng.Discover(rec.Name, rec.Bases)
				if len(intervals) > 0 {
					if err := w.WriteBatch(intervals); err != nil {
						logger.Printf("run %s: record %q: write error: %v", runID, rec.Name, err)
						return
					}
				}

				if verbose {
					fmt.Printf("record %d (%s): %d bases, %d interval(s), %s\n",
						n, rec.Name, len(rec.Bases), len(intervals), time.Since(t0))
				}
			}(rec, n)
		}
	}

	wg.Wait()

	logger.Printf("dispatch run %s done: %s record(s) in %s",
		runID, humanize.Comma(nrec), time.Since(start).Round(time.Millisecond))

	return ctx.Err()
}
