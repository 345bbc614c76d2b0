// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"context"
	"fmt"
	"image/color"

	"github.com/distfri/friperf/benchgrid"
	"gonum.org/v1/plot/vg/draw"
)

// A Metric is one measured cost of a protocol run.
type Metric int

const (
	WorkerTime    Metric = iota // prover time of one worker
	OverallTime                 // prover time including the master
	VerifyTime                  // verifier time
	CommCost                    // bytes sent between workers and master
	ProofSize                   // size of the final proof
	WorkerMemory                // peak memory of one worker
	OverallMemory               // peak memory of master or worker, whichever is larger
	numMetrics
)

var metricInfo = [numMetrics]struct {
	name, title, yLabel string
	kind                benchgrid.Kind
}{
	WorkerTime:    {"worker-time", "Worker prover time", "Prover time (s)", benchgrid.Timing},
	OverallTime:   {"overall-time", "Overall prover time", "Prover time (s)", benchgrid.Timing},
	VerifyTime:    {"verify-time", "Verification time", "Verification time (s)", benchgrid.Timing},
	CommCost:      {"comm-cost", "Communication costs", "Communication (MB)", benchgrid.ByteCount},
	ProofSize:     {"proof-size", "Proof size", "Proof size (MB)", benchgrid.ByteCount},
	WorkerMemory:  {"worker-memory", "Worker memory usage", "Memory (GB)", benchgrid.KilobyteCount},
	OverallMemory: {"overall-memory", "Overall memory usage", "Memory (GB)", benchgrid.KilobyteCount},
}

func (m Metric) String() string {
	if m < 0 || m >= numMetrics {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricInfo[m].name
}

// Kind returns the artifact format the metric is recorded in.
func (m Metric) Kind() benchgrid.Kind {
	return metricInfo[m].kind
}

// ParseMetric returns the Metric named s.
func ParseMetric(s string) (Metric, error) {
	for m := Metric(0); m < numMetrics; m++ {
		if metricInfo[m].name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", s)
}

// Metrics returns all metrics in display order.
func Metrics() []Metric {
	ms := make([]Metric, numMetrics)
	for i := range ms {
		ms[i] = Metric(i)
	}
	return ms
}

// hasSingleMachinePoint reports whether a run on one machine yields
// a meaningful measurement of m. A lone machine sends nothing.
func (m Metric) hasSingleMachinePoint() bool {
	return m != CommCost
}

// A Measure says how to obtain a metric's grid from a protocol's
// artifacts: read every file and, if there are several, combine them
// with Op.
type Measure struct {
	Files []string
	Op    benchgrid.Op
}

// Load reads the artifacts of m from src as grids of kind and combines
// them.
func (m Measure) Load(ctx context.Context, src benchgrid.Source, kind benchgrid.Kind, cfg benchgrid.Config) (*benchgrid.Grid, error) {
	if len(m.Files) == 0 {
		return nil, fmt.Errorf("measure has no files")
	}
	grids := make([]*benchgrid.Grid, 0, len(m.Files))
	for _, name := range m.Files {
		g, err := benchgrid.Load(ctx, src, name, kind, cfg)
		if err != nil {
			return nil, err
		}
		grids = append(grids, g)
	}
	if len(grids) == 1 {
		return grids[0], nil
	}
	return benchgrid.Combine(m.Op, grids...)
}

// A Style is how a protocol's line is drawn.
type Style struct {
	Color color.Color
	Shape draw.GlyphDrawer
}

// A Protocol is a benchmarked proving strategy and the artifacts its
// benchmark harness writes.
type Protocol struct {
	Name  string // short name, used in flags and CSV
	Label string // legend label

	// Baseline protocols can run on a single machine, so their
	// single-machine point is a monolithic prover worth
	// comparing against.
	Baseline bool

	Measures map[Metric]Measure
	Style    Style
}

func (p *Protocol) String() string {
	return p.Name
}

// GridMetrics returns the metrics of ms that p measures, leaving out
// any whose measure repeats that of an earlier one. Parallel FRI, for
// one, has no master, so its overall costs are its worker costs.
func (p *Protocol) GridMetrics(ms []Metric) []Metric {
	var out []Metric
	for _, m := range ms {
		meas, ok := p.Measures[m]
		if !ok {
			continue
		}
		dup := false
		for _, prev := range out {
			if meas.equal(p.Measures[prev]) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, m)
		}
	}
	return out
}

func (m Measure) equal(o Measure) bool {
	if m.Op != o.Op || len(m.Files) != len(o.Files) {
		return false
	}
	for i := range m.Files {
		if m.Files[i] != o.Files[i] {
			return false
		}
	}
	return true
}

// distributedMeasures returns the artifact layout shared by the
// master/worker protocols, whose files all start with prefix.
func distributedMeasures(prefix string) map[Metric]Measure {
	f := func(files ...string) []string {
		for i := range files {
			files[i] = prefix + files[i]
		}
		return files
	}
	return map[Metric]Measure{
		WorkerTime:    {Files: f("folding.json")},
		OverallTime:   {Files: f("master.json", "folding.json"), Op: benchgrid.Sum},
		VerifyTime:    {Files: f("verify.json")},
		CommCost:      {Files: f("comm_cost")},
		ProofSize:     {Files: f("proof_size")},
		WorkerMemory:  {Files: f("worker_memory")},
		OverallMemory: {Files: f("master_memory", "worker_memory"), Op: benchgrid.Max},
	}
}

var (
	// ParallelFRI runs FRI independently on every machine. It is
	// the baseline; it has no master and sends nothing.
	ParallelFRI = &Protocol{
		Name:     "para",
		Label:    "Parallel FRI",
		Baseline: true,
		Measures: map[Metric]Measure{
			WorkerTime:    {Files: []string{"parallel_fri_prover.json"}},
			OverallTime:   {Files: []string{"parallel_fri_prover.json"}},
			VerifyTime:    {Files: []string{"parallel_fri_verify.json"}},
			ProofSize:     {Files: []string{"parallel_fri_proof_size"}},
			WorkerMemory:  {Files: []string{"parallel_fri_prover_memory"}},
			OverallMemory: {Files: []string{"parallel_fri_prover_memory"}},
		},
		Style: Style{color.NRGBA{0, 0x80, 0, 0xff}, draw.BoxGlyph{}},
	}

	// FoldAndBatch is the Fold-and-Batch protocol with the
	// workers' last layer at a quarter of their degree bound.
	FoldAndBatch = &Protocol{
		Name:     "fab",
		Label:    "Fold-and-Batch (K = T / 4)",
		Measures: distributedMeasures("fold_and_batch_"),
		Style:    Style{color.NRGBA{0, 0, 0xff, 0xff}, draw.TriangleGlyph{}},
	}

	// DistributedBatchedFRI is the Distributed Batched FRI protocol.
	DistributedBatchedFRI = &Protocol{
		Name:     "dbf",
		Label:    "Distributed Batched FRI",
		Measures: distributedMeasures("distributed_batched_fri_"),
		Style:    Style{color.NRGBA{0xff, 0, 0, 0xff}, draw.CircleGlyph{}},
	}
)

// Protocols returns the benchmarked protocols in legend order.
func Protocols() []*Protocol {
	return []*Protocol{DistributedBatchedFRI, FoldAndBatch, ParallelFRI}
}

// LookupProtocol returns the protocol with the given short name.
func LookupProtocol(name string) (*Protocol, error) {
	for _, p := range Protocols() {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown protocol %q", name)
}
