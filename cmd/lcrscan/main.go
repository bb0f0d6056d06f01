// Copyright 2017, Kerby Shedden and the Muscato contributors.
// Copyright 2026, the lcrscan contributors.

// lcrscan identifies low-complexity regions in FASTA-formatted sequences
// and reports them as a tab-separated list of maximal intervals.
//
// A typical invocation:
//
//	lcrscan -i genome.fasta -o lcrs.tsv -t 8
//
// Engine parameters may also be overridden:
//
//	lcrscan -i genome.fasta -o lcrs.tsv -k 9 -T 0.8 -w 2000
//
// Or loaded from a JSON or TOML configuration file, with flags taking
// precedence over file values when both are given:
//
//	lcrscan -c config.json -i genome.fasta -o lcrs.tsv
//
// The report may be written through a Snappy compression layer, either
// explicitly or by naming an output file ending in ".sz":
//
//	lcrscan -i genome.fasta -o lcrs.tsv.sz
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pkg/profile"
	flag "github.com/spf13/pflag"

	"github.com/kshedden/lcrscan/config"
	"github.com/kshedden/lcrscan/dispatch"
	"github.com/kshedden/lcrscan/engine"
	"github.com/kshedden/lcrscan/fasta"
	"github.com/kshedden/lcrscan/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lcrscan:", err)
		os.Exit(1)
	}
}

func run() error {

	var (
		input     = flag.StringP("input", "i", "", "FASTA input file (required)")
		output    = flag.StringP("output", "o", "", "TSV output file, created/truncated (required)")
		threads   = flag.IntP("threads", "t", 0, "worker pool size")
		k         = flag.IntP("kmer", "k", 0, "k-mer length")
		threshold = flag.Float64P("threshold", "T", 0, "per-k-mer score threshold")
		maxWindow = flag.IntP("max-window", "w", 0, "maximum window length")
		cfgPath   = flag.StringP("config", "c", "", "JSON or TOML configuration file")
		verbose   = flag.BoolP("verbose", "v", false, "print per-record timing lines")
		compress  = flag.Bool("compress", false, "write the report through a Snappy compression layer")
		cpuprof   = flag.Bool("cpuprofile", false, "enable CPU profiling for this run")
	)
	flag.Parse()

	if *cpuprof {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := loadConfig(*cfgPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = *loaded
	}

	// Flags override whatever came from a config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "output":
			cfg.Output = *output
		case "threads":
			cfg.Threads = *threads
		case "kmer":
			cfg.K = *k
		case "threshold":
			cfg.Threshold = *threshold
		case "max-window":
			cfg.MaxWindow = *maxWindow
		case "verbose":
			cfg.Verbose = *verbose
		case "compress":
			cfg.Compress = *compress
		}
	})

	// A .sz output extension implies compression even without --compress.
	if strings.HasSuffix(strings.ToLower(cfg.Output), ".sz") {
		cfg.Compress = true
	}

	if cfg.Input == "" || cfg.Output == "" {
		flag.Usage()
		return fmt.Errorf("both --input and --output are required")
	}

	in, err := os.Open(cfg.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	logger := log.New(os.Stderr, "lcrscan: ", log.Ltime)

	var writer *report.Writer
	if cfg.Compress {
		var closer io.Closer
		writer, closer = report.NewSnappyWriter(out)
		defer closer.Close()
	} else {
		writer = report.NewWriter(out)
	}
	if err := writer.WriteHeader(); err != nil {
		return err
	}

	eng := engine.New(cfg.K, cfg.MaxWindow, cfg.Threshold)

	records := make(chan fasta.Record)
	readErrCh := make(chan error, 1)
	go func() {
		defer close(records)
		defer close(readErrCh)
		reader := fasta.NewReader(in)
		for {
			rec, ok, err := reader.Next()
			if err != nil {
				readErrCh <- err
				return
			}
			if !ok {
				return
			}
			records <- rec
		}
	}()

	if err := dispatch.Run(context.Background(), records, cfg.Threads, eng, writer, logger, cfg.Verbose); err != nil {
		return err
	}
	if err := <-readErrCh; err != nil {
		return fmt.Errorf("reading %s: %w", cfg.Input, err)
	}

	return nil
}

// loadConfig dispatches to the JSON or TOML loader based on the file
// extension, following the reference project's ReadConfig but supporting
// both formats wired in by this project's expanded configuration layer.
func loadConfig(path string) (*config.Config, error) {
	if strings.HasSuffix(strings.ToLower(path), ".toml") {
		return config.LoadTOML(path)
	}
	return config.LoadJSON(path)
}
