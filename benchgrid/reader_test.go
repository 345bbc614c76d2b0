// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchgrid

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/distfri/friperf/benchunit"
	"github.com/google/go-cmp/cmp"
)

// smallConfig is a 2×3 grid: instance sizes 2^21, 2^22 on 1, 2, 4 machines.
var smallConfig = Config{InstanceSize: Range{21, 23}, Machines: Range{0, 3}}

func timingLine(ns string) string {
	return fmt.Sprintf(`{"reason":"benchmark-complete","id":"prover/x","typical":{"estimate":%s,"lower_bound":0,"upper_bound":0,"unit":"ns"}}`, ns)
}

const groupLine = `{"reason":"group-complete","group_name":"prover","benchmarks":[]}`

func TestReadTiming(t *testing.T) {
	var lines []string
	for _, ns := range []string{"1e9", "2e9", "3e9", "4e9", "5e9", "6e9"} {
		lines = append(lines, timingLine(ns))
	}
	lines = append(lines, groupLine)

	g, err := Read(strings.NewReader(strings.Join(lines, "\n")+"\n"), "prover.json", Timing, smallConfig)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]float64{{1, 2, 3}, {4, 5, 6}}
	if diff := cmp.Diff(want, g.Values); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
	if g.Unit != benchunit.Seconds {
		t.Errorf("unit = %v, want %v", g.Unit, benchunit.Seconds)
	}

	s, err := g.Row(22)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Series{Lo: 0, Values: []float64{4, 5, 6}}, s); diff != "" {
		t.Errorf("Row(22) mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTimingSummaryIgnored(t *testing.T) {
	// The trailing record is dropped without being looked at, so
	// even garbage there is fine.
	for _, summary := range []string{groupLine, "not json at all", timingLine("9e9")} {
		data := strings.Join([]string{
			timingLine("1e9"), timingLine("2e9"), timingLine("3e9"),
			timingLine("4e9"), timingLine("5e9"), timingLine(`"6e9"`),
			summary,
		}, "\n")
		g, err := Read(strings.NewReader(data), "t", Timing, smallConfig)
		if err != nil {
			t.Errorf("summary %q: %v", summary, err)
			continue
		}
		if got := g.Values[1][2]; got != 6 {
			t.Errorf("summary %q: last cell = %v, want 6", summary, got)
		}
	}
}

func TestReadCounts(t *testing.T) {
	data := "1000000\n2000000\n\n   3000000  \n4000000\n5000000\n6000000\n"
	for _, test := range []struct {
		kind Kind
		unit benchunit.Unit
	}{
		{ByteCount, benchunit.Megabytes},
		{KilobyteCount, benchunit.Gigabytes},
	} {
		g, err := Read(strings.NewReader(data), "sizes", test.kind, smallConfig)
		if err != nil {
			t.Fatalf("%v: %v", test.kind, err)
		}
		want := [][]float64{{1, 2, 3}, {4, 5, 6}}
		if diff := cmp.Diff(want, g.Values); diff != "" {
			t.Errorf("%v: grid mismatch (-want +got):\n%s", test.kind, diff)
		}
		if g.Unit != test.unit {
			t.Errorf("%v: unit = %v, want %v", test.kind, g.Unit, test.unit)
		}
	}
}

func TestReadMalformed(t *testing.T) {
	six := "1\n2\n3\n4\n5\n6\n"
	for _, test := range []struct {
		name string
		kind Kind
		data string
		line int
	}{
		{"short", ByteCount, "1\n2\n3\n4\n5\n", 0},
		{"long", ByteCount, six + "7\n", 0},
		{"empty", KilobyteCount, "", 0},
		{"not a number", ByteCount, "1\n2\nthree\n4\n5\n6\n", 3},
		{"float count", KilobyteCount, "1\n2\n3.5\n4\n5\n6\n", 3},
		{"negative", ByteCount, "1\n-2\n3\n4\n5\n6\n", 2},
		{"blank lines shift line numbers", ByteCount, "1\n\n\nx\n5\n6\n7\n8\n", 4},
		{"timing without summary", Timing, strings.Repeat(timingLine("1")+"\n", 6), 0},
		{"timing empty", Timing, "", 0},
		{"bad json", Timing, "{\n" + strings.Repeat(timingLine("1")+"\n", 6), 1},
		{"missing estimate", Timing, `{"typical":{"lower_bound":1}}` + "\n" + strings.Repeat(timingLine("1")+"\n", 6), 1},
		{"missing typical", Timing, `{"reason":"benchmark-complete"}` + "\n" + strings.Repeat(timingLine("1")+"\n", 6), 1},
		{"string estimate", Timing, timingLine(`"fast"`) + "\n" + strings.Repeat(timingLine("1")+"\n", 6), 1},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(test.data), "f", test.kind, smallConfig)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("got error %v, want ErrMalformedRecord", err)
			}
			var rerr *RecordError
			if !errors.As(err, &rerr) {
				t.Fatalf("error %T is not a *RecordError", err)
			}
			if rerr.Line != test.line {
				t.Errorf("error %q at line %d, want line %d", err, rerr.Line, test.line)
			}
			if rerr.FileName != "f" {
				t.Errorf("error file name %q, want f", rerr.FileName)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "comm_cost")
	if err := os.WriteFile(path, []byte("5\n6\n7\n8\n9\n10\n"), 0666); err != nil {
		t.Fatal(err)
	}
	g, err := ReadFile(path, ByteCount, smallConfig)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := g.Values[1][0], 8e-6; got != want {
		t.Errorf("Values[1][0] = %v, want %v", got, want)
	}

	_, err = ReadFile(filepath.Join(dir, "missing"), ByteCount, smallConfig)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("missing file: got %v, want ErrDataUnavailable", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: %v does not wrap fs.ErrNotExist", err)
	}
	if errors.Is(err, ErrMalformedRecord) {
		t.Errorf("missing file: %v matches ErrMalformedRecord", err)
	}
}

func TestReadBadConfig(t *testing.T) {
	cfg := Config{InstanceSize: Range{21, 21}, Machines: Range{0, 3}}
	if _, err := Read(strings.NewReader(""), "f", ByteCount, cfg); err == nil {
		t.Errorf("Read with empty instance-size range succeeded")
	}
}
