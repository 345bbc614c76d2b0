// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"strings"
)

// A Chart describes one cross-protocol comparison figure.
type Chart struct {
	Metric Metric
	Title  string
	YLabel string

	// YTicks are the labelled positions on the y axis. If empty,
	// the plot picks its own.
	YTicks []float64

	// WorkerOnly charts compare per-worker costs, so the
	// baseline's single-machine point is dropped like every other
	// protocol's. Otherwise it is kept to compare distributed
	// proving against one monolithic prover.
	WorkerOnly bool
}

// Name returns the chart's name, which is its metric's name.
func (c *Chart) Name() string {
	return c.Metric.String()
}

// Charts returns the published comparison charts.
func Charts() []*Chart {
	return []*Chart{
		{Metric: OverallTime, Title: "Overall Prover Runtimes", YLabel: "Time (s)",
			YTicks: []float64{0.65, 5, 10, 20, 50, 85}},
		{Metric: WorkerTime, Title: "Worker Runtimes", YLabel: "Time (s)",
			YTicks: []float64{0.4, 1, 10, 20, 50}, WorkerOnly: true},
		{Metric: CommCost, Title: "Communication Costs", YLabel: "Communication (MB)",
			YTicks: []float64{1000, 2000, 3000, 4000}},
		{Metric: VerifyTime, Title: "Verification Time", YLabel: "Time (s)",
			YTicks: []float64{0.003, 0.005, 0.05, 0.1, 0.2, 0.3}},
		{Metric: ProofSize, Title: "Proof Size", YLabel: "Proof Size (MB)",
			YTicks: []float64{0.3, 1, 3, 10, 23}},
		{Metric: WorkerMemory, Title: "Worker Memory Costs", YLabel: "Memory (GB)",
			YTicks: []float64{0.23, 1, 5, 10, 15}, WorkerOnly: true},
		{Metric: OverallMemory, Title: "Overall Memory Costs", YLabel: "Memory (GB)",
			YTicks: []float64{0.23, 4, 10, 20, 30}},
	}
}

// ParseCharts parses a comma-separated list of chart names. "all"
// selects every chart.
func ParseCharts(list string) ([]*Chart, error) {
	all := Charts()
	if strings.TrimSpace(list) == "all" {
		return all, nil
	}
	var out []*Chart
	seen := make(map[string]bool)
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		var found *Chart
		for _, c := range all {
			if c.Name() == name {
				found = c
			}
		}
		if found == nil {
			return nil, fmt.Errorf("unknown chart %q", name)
		}
		seen[name] = true
		out = append(out, found)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no charts selected")
	}
	return out, nil
}
