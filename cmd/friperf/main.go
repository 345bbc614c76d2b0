// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Friperf charts benchmark results of distributed FRI provers.
//
// Usage:
//
//	friperf [flags]
//
// Each of -para, -fab and -dbf names the directory (or gs://bucket/prefix
// URL) holding the artifacts the benchmark harness wrote for Parallel
// FRI, Fold-and-Batch and Distributed Batched FRI respectively. At least
// one must be given. Artifacts hold one measurement per line, for every
// instance size in -instance-sizes and every machine count in -machines,
// as exponents of 2.
//
// For every chart in -charts, friperf lines up the protocols at the
// largest instance size and prints a table of the values with their
// scaling. The -png, -svg and -pdf flags also render the charts into the
// given directories, and -grids renders, for each protocol, one chart
// per metric with a line per instance size.
//
// A protocol whose artifacts are missing or malformed is left out of a
// chart with a warning.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	"github.com/distfri/friperf/benchdb"
	_ "github.com/distfri/friperf/benchdb/sqlite3"
	"github.com/distfri/friperf/benchgrid"
	"github.com/distfri/friperf/benchgrid/gcs"
	"github.com/distfri/friperf/benchseries"
	"github.com/distfri/friperf/report"
	_ "github.com/go-sql-driver/mysql"
	"google.golang.org/api/option"
)

func main() {
	log.SetPrefix("friperf: ")
	log.SetFlags(0)
	if err := friperf(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

type options struct {
	dirs        map[*benchseries.Protocol]*string
	instances   string
	machines    string
	charts      string
	grids       bool
	formatDirs  map[string]*string
	csv         bool
	gridCSV     string
	text        bool
	html        string
	db          string
	credentials string
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *options) {
	fs := flag.NewFlagSet("friperf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: friperf [flags]\n")
		fs.PrintDefaults()
	}

	o := &options{
		dirs:       make(map[*benchseries.Protocol]*string),
		formatDirs: make(map[string]*string),
	}
	for _, p := range benchseries.Protocols() {
		o.dirs[p] = fs.String(p.Name, "", "read "+p.Label+" artifacts from `dir` or gs://bucket/prefix")
	}
	def := benchgrid.DefaultConfig
	fs.StringVar(&o.instances, "instance-sizes", def.InstanceSize.String(), "instance-size exponent `range` lo:hi")
	fs.StringVar(&o.machines, "machines", def.Machines.String(), "machine-count exponent `range` lo:hi")
	fs.StringVar(&o.charts, "charts", "all", "comma-separated chart `names`, or all")
	fs.BoolVar(&o.grids, "grids", false, "also chart every instance size of each protocol")
	for _, f := range benchseries.Formats {
		o.formatDirs[f] = fs.String(f, "", "write "+f+" charts to `dir`")
	}
	fs.BoolVar(&o.csv, "csv", false, "write the chart series as CSV to stdout instead of the text summary")
	fs.StringVar(&o.gridCSV, "grid-csv", "", "with -grids, write the grid series as CSV to `file`")
	fs.BoolVar(&o.text, "text", true, "write a text summary to stdout")
	fs.StringVar(&o.html, "html", "", "write an HTML report to `file`")
	fs.StringVar(&o.db, "db", "", "store every charted grid in the SQL database `driver:dsn`")
	fs.StringVar(&o.credentials, "credentials", "", "read GCS service account credentials from `file`")
	return fs, o
}

func friperf(stdout, stderr io.Writer, args []string) error {
	fs, o := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	warn := log.New(stderr, "friperf: ", 0)

	cfg, err := parseConfig(o.instances, o.machines)
	if err != nil {
		return err
	}
	charts, err := benchseries.ParseCharts(o.charts)
	if err != nil {
		return err
	}

	ctx := context.Background()
	inputs, closeSources, err := openInputs(ctx, o)
	if err != nil {
		return err
	}
	defer closeSources()

	var db *benchdb.DB
	if o.db != "" {
		driver, dsn, ok := strings.Cut(o.db, ":")
		if !ok {
			return fmt.Errorf("-db %q: want driver:dsn", o.db)
		}
		if db, err = benchdb.OpenSQL(driver, dsn); err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
	}

	var comparisons []*benchseries.Comparison
	stored := make(map[string]bool) // protocol and artifact paths
	page := report.Page{Title: "FRI prover benchmarks"}
	for _, c := range charts {
		cmp, err := benchseries.Assemble(ctx, c, inputs, cfg)
		if err != nil {
			warn.Printf("skipping %s: %v", c.Name(), err)
			page.Warnings = append(page.Warnings, fmt.Sprintf("%s skipped: %v", c.Name(), err))
			continue
		}
		for _, err := range cmp.Missing {
			warn.Printf("%s: %v", c.Name(), err)
			page.Warnings = append(page.Warnings, fmt.Sprintf("%s: %v", c.Name(), err))
		}
		comparisons = append(comparisons, cmp)

		if db != nil {
			if err := storeComparison(ctx, db, inputs, cmp, stored); err != nil {
				return err
			}
		}

		image, err := saveChart(o, cmp, warn)
		if err != nil {
			return err
		}
		page.Sections = append(page.Sections, report.NewSection(cmp, image))
	}
	if len(comparisons) == 0 {
		return errors.New("no chart has data")
	}

	switch {
	case o.csv:
		if err := benchseries.WriteCSV(stdout, comparisons); err != nil {
			return err
		}
	case o.text:
		for _, cmp := range comparisons {
			if err := benchseries.WriteText(stdout, cmp); err != nil {
				return err
			}
		}
	}

	if o.grids {
		if err := writeGrids(ctx, o, inputs, charts, cfg, warn); err != nil {
			return err
		}
	}

	if o.html != "" {
		f, err := os.Create(o.html)
		if err != nil {
			return err
		}
		if err := report.Write(f, page); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func parseConfig(instances, machines string) (benchgrid.Config, error) {
	var cfg benchgrid.Config
	var err error
	if cfg.InstanceSize, err = benchgrid.ParseRange(instances); err != nil {
		return cfg, fmt.Errorf("-instance-sizes: %w", err)
	}
	if cfg.Machines, err = benchgrid.ParseRange(machines); err != nil {
		return cfg, fmt.Errorf("-machines: %w", err)
	}
	return cfg, cfg.Validate()
}

// openInputs returns an Input for every protocol given on the command
// line, in legend order. The returned func releases the GCS client, if
// one was needed.
func openInputs(ctx context.Context, o *options) ([]benchseries.Input, func(), error) {
	var client *storage.Client
	closer := func() {
		if client != nil {
			client.Close()
		}
	}
	var inputs []benchseries.Input
	for _, p := range benchseries.Protocols() {
		loc := *o.dirs[p]
		if loc == "" {
			continue
		}
		if !gcs.IsURL(loc) {
			inputs = append(inputs, benchseries.Input{Protocol: p, Source: benchgrid.Dir(loc)})
			continue
		}
		if client == nil {
			var opts []option.ClientOption
			if o.credentials != "" {
				opts = append(opts, option.WithCredentialsFile(o.credentials))
			}
			var err error
			if client, err = storage.NewClient(ctx, opts...); err != nil {
				return nil, closer, fmt.Errorf("connecting to GCS: %w", err)
			}
		}
		src, err := gcs.New(client, loc)
		if err != nil {
			closer()
			return nil, func() {}, fmt.Errorf("-%s: %w", p.Name, err)
		}
		inputs = append(inputs, benchseries.Input{Protocol: p, Source: src})
	}
	if len(inputs) == 0 {
		closer()
		return nil, func() {}, errors.New("no protocol data given; use -para, -fab or -dbf")
	}
	return inputs, closer, nil
}

// storeComparison archives the grid behind every line of cmp, unless
// the same artifacts were already stored for that protocol.
func storeComparison(ctx context.Context, db *benchdb.DB, inputs []benchseries.Input, cmp *benchseries.Comparison, stored map[string]bool) error {
	for _, l := range cmp.Lines {
		var src benchgrid.Source
		for _, in := range inputs {
			if in.Protocol == l.Protocol {
				src = in.Source
			}
		}
		var paths []string
		for _, f := range l.Protocol.Measures[cmp.Chart.Metric].Files {
			paths = append(paths, src.Path(f))
		}
		info := benchdb.GridInfo{
			Protocol: l.Protocol.Name,
			Metric:   cmp.Chart.Metric.String(),
			Source:   strings.Join(paths, ","),
		}
		key := info.Protocol + " " + info.Source
		if stored[key] {
			continue
		}
		stored[key] = true
		if _, err := db.InsertGrid(ctx, info, l.Grid); err != nil {
			return fmt.Errorf("storing %s %s: %w", info.Protocol, info.Metric, err)
		}
	}
	return nil
}

// saveChart renders cmp in every requested format. It returns the path
// of an image for the HTML report, relative to the report, or "" if
// none was written. A chart with nothing to draw is only a warning.
func saveChart(o *options, cmp *benchseries.Comparison, warn *log.Logger) (string, error) {
	if !o.anyFormat() {
		return "", nil
	}
	p, err := benchseries.Render(cmp)
	if err != nil {
		warn.Print(err)
		return "", nil
	}
	var image string
	for _, format := range benchseries.Formats {
		dir := *o.formatDirs[format]
		if dir == "" {
			continue
		}
		file, err := benchseries.Save(p, dir, cmp.Chart.Name(), format)
		if err != nil {
			return "", err
		}
		if image == "" && format != "pdf" {
			image = o.relToHTML(file)
		}
	}
	return image, nil
}

func (o *options) anyFormat() bool {
	for _, dir := range o.formatDirs {
		if *dir != "" {
			return true
		}
	}
	return false
}

// relToHTML returns file as a slash-separated path relative to the
// HTML report's directory.
func (o *options) relToHTML(file string) string {
	if o.html == "" {
		return filepath.ToSlash(file)
	}
	if rel, err := filepath.Rel(filepath.Dir(o.html), file); err == nil {
		file = rel
	}
	return filepath.ToSlash(file)
}

// writeGrids charts each protocol's metrics one line per instance size.
func writeGrids(ctx context.Context, o *options, inputs []benchseries.Input, charts []*benchseries.Chart, cfg benchgrid.Config, warn *log.Logger) error {
	var grids []*benchseries.GridComparison
	var metrics []benchseries.Metric
	for _, c := range charts {
		metrics = append(metrics, c.Metric)
	}
	for _, in := range inputs {
		for _, m := range in.Protocol.GridMetrics(metrics) {
			g, err := benchseries.AssembleGrid(ctx, in.Protocol, m, in.Source, cfg)
			if err != nil {
				warn.Printf("grid: %v", err)
				continue
			}
			grids = append(grids, g)
			if !o.anyFormat() {
				continue
			}
			p, err := benchseries.RenderGrid(g)
			if err != nil {
				warn.Printf("grid: %v", err)
				continue
			}
			for _, format := range benchseries.Formats {
				dir := *o.formatDirs[format]
				if dir == "" {
					continue
				}
				name := in.Protocol.Name + "-" + m.String()
				if _, err := benchseries.Save(p, filepath.Join(dir, "grids"), name, format); err != nil {
					return err
				}
			}
		}
	}
	if o.gridCSV == "" {
		return nil
	}
	f, err := os.Create(o.gridCSV)
	if err != nil {
		return err
	}
	if err := benchseries.WriteGridCSV(f, grids); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
