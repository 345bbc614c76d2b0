// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchgrid

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/distfri/friperf/benchunit"
)

// A Kind identifies the format of a benchmark artifact.
type Kind int

const (
	// Timing files hold one JSON object per line, as written by
	// criterion's JSON message format. The measurement is the
	// typical.estimate field, in nanoseconds. The last line is a
	// group summary and carries no measurement.
	Timing Kind = iota

	// ByteCount files hold one decimal byte count per line
	// (proof sizes, communication costs).
	ByteCount

	// KilobyteCount files hold one decimal kilobyte count per line
	// (peak resident memory as reported by the OS).
	KilobyteCount
)

var kindNames = map[Kind]string{
	Timing:        "timing",
	ByteCount:     "bytes",
	KilobyteCount: "kilobytes",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown artifact kind %q", s)
}

// Unit returns the display unit of grids read from artifacts of kind k.
func (k Kind) Unit() benchunit.Unit {
	switch k {
	case Timing:
		return benchunit.Seconds
	case ByteCount:
		return benchunit.Megabytes
	case KilobyteCount:
		return benchunit.Gigabytes
	}
	panic(fmt.Sprintf("bad Kind %v", k))
}

// hasSummary reports whether files of kind k end in a summary record.
func (k Kind) hasSummary() bool {
	return k == Timing
}

// parse returns the raw measurement recorded on line.
func (k Kind) parse(line []byte) (float64, error) {
	switch k {
	case Timing:
		return parseEstimate(line)
	case ByteCount, KilobyteCount:
		return parseCount(line)
	}
	panic(fmt.Sprintf("bad Kind %v", k))
}

// criterionRecord is the part of a criterion benchmark-complete
// message that we use.
type criterionRecord struct {
	Typical *struct {
		Estimate *json.Number `json:"estimate"`
	} `json:"typical"`
}

func parseEstimate(line []byte) (float64, error) {
	var rec criterionRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return 0, fmt.Errorf("bad JSON: %v", err)
	}
	if rec.Typical == nil || rec.Typical.Estimate == nil {
		return 0, errors.New("missing typical.estimate")
	}
	v, err := strconv.ParseFloat(rec.Typical.Estimate.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("bad typical.estimate %q", rec.Typical.Estimate.String())
	}
	return v, nil
}

func parseCount(line []byte) (float64, error) {
	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad count %q", line)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return float64(n), nil
}
