// Copyright 2017, Kerby Shedden and the Muscato contributors.
// Copyright 2026, the lcrscan contributors.

// Package config holds the tunable parameters of an lcrscan run and the
// loaders for its two supported file formats (JSON and TOML), following
// the reference project's Config struct (utils/config.go) and its
// tests/test.go use of TOML for its own test manifest.
package config

import (
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors the reference project's JSON-configuration pattern,
// trimmed and renamed for the LCR discovery engine.
type Config struct {

	// The FASTA file containing the sequences to scan.
	Input string

	// The file path where the TSV report is written.
	Output string

	// The number of worker goroutines processing records concurrently.
	Threads int

	// K-mer length used by the scoring function.
	K int

	// Per-k-mer score threshold; also the minimum total score for a
	// window to be reported.
	Threshold float64

	// Maximum window length considered by the enumerator.
	MaxWindow int

	// If true, emit per-record timing lines to stdout.
	Verbose bool

	// If true, the output file is written through a Snappy compression
	// layer (report.NewSnappyWriter) instead of report.NewWriter.
	Compress bool
}

// Default returns a Config populated with the shipped defaults: k=7,
// threshold=0.6, max window=5000, a single worker thread.
func Default() Config {
	return Config{
		Threads:   1,
		K:         7,
		Threshold: 0.6,
		MaxWindow: 5000,
	}
}

// LoadJSON reads a JSON configuration file, following ReadConfig's
// decode-into-struct shape in the reference project, but returning an
// error instead of panicking: this is a library entry point rather than
// a one-shot script.
func LoadJSON(path string) (*Config, error) {
	fid, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fid.Close()

	cfg := Default()
	dec := json.NewDecoder(fid)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadTOML reads a TOML configuration file using the same decoder the
// reference project's test harness uses for tests.toml.
func LoadTOML(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
