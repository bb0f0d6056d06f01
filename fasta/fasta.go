// Copyright 2017, Kerby Shedden and the Muscato contributors.
// Copyright 2026, the lcrscan contributors.

// Package fasta implements a minimal streaming FASTA reader, generalizing
// the fixed 4-line-record FASTQ reader the rest of this project's
// reference lineage uses (utils.ReadInSeq) to FASTA's variable-length,
// multi-line sequence blocks.
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Record is one parsed FASTA entry: Name is the first whitespace-delimited
// token of the header line, or "" if the header carries no token (a bare
// ">" line). Bases is the concatenated sequence with all embedded
// whitespace stripped.
type Record struct {
	Name  string
	Bases []byte
}

// Reader streams Records from an underlying io.Reader.
type Reader struct {
	scanner *bufio.Scanner

	// pendingHeader holds a header line already consumed while reading
	// the previous record's sequence lines, to be used as the start of
	// the next record.
	pendingHeader []byte
	started       bool
	done          bool
}

// NewReader wraps r for FASTA record-at-a-time reading. The internal
// scan buffer is grown to 1 MiB, matching the reference project's
// convention for tolerating very long single-line sequences.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Reader{scanner: scanner}
}

// Next returns the next record, or ok=false when the input is exhausted.
// A non-nil error indicates a read failure or a malformed file (one that
// does not begin with '>').
func (r *Reader) Next() (rec Record, ok bool, err error) {

	if r.done {
		return Record{}, false, nil
	}

	var header []byte
	if r.pendingHeader != nil {
		header = r.pendingHeader
		r.pendingHeader = nil
	} else {
		if !r.scanner.Scan() {
			r.done = true
			if err := r.scanner.Err(); err != nil {
				return Record{}, false, err
			}
			return Record{}, false, nil
		}
		header = append([]byte(nil), r.scanner.Bytes()...)
		if len(header) == 0 || header[0] != '>' {
			return Record{}, false, fmt.Errorf("fasta: expected '>' header, got %q", header)
		}
	}
	r.started = true

	var name string
	if fields := bytes.Fields(header[1:]); len(fields) > 0 {
		name = string(fields[0])
	}

	var bases []byte
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) > 0 && line[0] == '>' {
			r.pendingHeader = append([]byte(nil), line...)
			return Record{Name: name, Bases: bases}, true, nil
		}
		bases = append(bases, stripWhitespace(line)...)
	}

	if err := r.scanner.Err(); err != nil {
		return Record{}, false, err
	}

	r.done = true
	return Record{Name: name, Bases: bases}, true, nil
}

// stripWhitespace removes ASCII whitespace from a sequence line in place,
// returning the trimmed slice.
func stripWhitespace(line []byte) []byte {
	out := line[:0]
	for _, b := range line {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			out = append(out, b)
		}
	}
	return out
}
