// Copyright 2026, the lcrscan contributors.

// Package report implements the buffered, mutex-guarded TSV writer that
// worker goroutines append merged intervals to. It follows the reference
// project's habit of wrapping output files in a compression layer
// (golang/snappy) for its intermediate and final files, offered here as
// an optional mode rather than the default, since the TSV contract in
// the specification names an uncompressed format.
package report

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/golang/snappy"

	"github.com/kshedden/lcrscan/engine"
)

// Header is the literal first line of the TSV report, per the output
// format contract.
const Header = "Name\tStart\tEnd\tString"

// Writer serializes concurrent writers appending batches of merged
// intervals to a single output stream.
type Writer struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewWriter wraps w for buffered, serialized TSV output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// NewSnappyWriter wraps w with an additional Snappy compression layer,
// for the optional .tsv.sz output mode. The returned closer must be
// closed after the final WriteBatch to flush the compressor's trailer.
func NewSnappyWriter(w io.Writer) (*Writer, io.Closer) {
	sz := snappy.NewBufferedWriter(w)
	return &Writer{w: bufio.NewWriter(sz)}, sz
}

// WriteHeader writes the report's header line followed by a blank line.
func (rw *Writer) WriteHeader() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	if _, err := rw.w.WriteString(Header + "\n\n"); err != nil {
		return err
	}
	return rw.w.Flush()
}

// WriteBatch appends one record's merged intervals as a single locked
// block and flushes, per the concurrency model's amortize-per-record-not
// -per-interval locking policy.
func (rw *Writer) WriteBatch(intervals []engine.Interval) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	for _, iv := range intervals {
		if _, err := fmt.Fprintf(rw.w, "%s\t%d\t%d\t%s\n", iv.Name, iv.Start, iv.End, iv.Seq); err != nil {
			return err
		}
	}
	return rw.w.Flush()
}
