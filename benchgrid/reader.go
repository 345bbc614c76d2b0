// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchgrid

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// maxLine bounds the length of one record. Criterion messages carry
// the raw sample arrays and can run to a few kilobytes.
const maxLine = 1 << 20

type record struct {
	line int // 1-based line number
	text []byte
}

// scanRecords returns the non-blank lines of r, trimmed of
// surrounding white space.
func scanRecords(r io.Reader) ([]record, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64<<10), maxLine)
	var recs []record
	line := 0
	for s.Scan() {
		line++
		text := bytes.TrimSpace(s.Bytes())
		if len(text) == 0 {
			continue
		}
		recs = append(recs, record{line, append([]byte(nil), text...)})
	}
	return recs, s.Err()
}

// Read parses an artifact of the given kind from r and packs its
// measurements row-major into a grid of shape cfg, converted to the
// kind's display unit. name is used in error messages; it is purely
// diagnostic.
//
// Blank lines are ignored. For Timing artifacts the last record is
// the group summary and is discarded without being parsed. The
// remaining record count must be exactly cfg.Cells(). Any malformed
// record or count mismatch is reported as a *RecordError; no partial
// grid is returned.
func Read(r io.Reader, name string, kind Kind, cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		name = "<unknown>"
	}
	recs, err := scanRecords(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if kind.hasSummary() && len(recs) > 0 {
		recs = recs[:len(recs)-1]
	}

	unit := kind.Unit()
	vals := make([]float64, len(recs))
	for i, rec := range recs {
		v, err := kind.parse(rec.text)
		if err != nil {
			return nil, &RecordError{name, rec.line, err.Error()}
		}
		vals[i] = unit.Convert(v)
	}
	if len(vals) != cfg.Cells() {
		return nil, &RecordError{name, 0, fmt.Sprintf("have %d %s records, want %d (%d instance sizes × %d machine counts)",
			len(vals), kind, cfg.Cells(), cfg.InstanceSize.Len(), cfg.Machines.Len())}
	}
	return newGrid(cfg, unit, vals), nil
}

// ReadFile reads the artifact at path. If path does not exist, it
// returns an error matching ErrDataUnavailable.
func ReadFile(path string, kind Kind, cfg Config) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Unavailable(path, err)
		}
		return nil, err
	}
	defer f.Close()
	return Read(f, path, kind, cfg)
}
