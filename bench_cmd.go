// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/ansel1/merry"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cybrota/treebench/bench"
)

type benchFlags struct {
	min, max, points       int
	errorMax               float64
	minSamples, maxSamples int
	estimator              string
	seed                   int64
	keySpace               int
	backends               []string
	output, sqlite         string
	progress, header       bool
}

func (f *benchFlags) register(fs *pflag.FlagSet) {
	d := defaultConfig.Bench
	fs.IntVar(&f.min, "min", d.MinN, "smallest workload size")
	fs.IntVar(&f.max, "max", d.MaxN, "largest workload size")
	fs.IntVar(&f.points, "points", d.Points, "number of workload sizes")
	fs.Float64Var(&f.errorMax, "error-max", d.ErrorMax, "largest tolerated clock resolution to measured time ratio")
	fs.IntVar(&f.minSamples, "min-samples", d.MinSamples, "fewest batches per size and backend")
	fs.IntVar(&f.maxSamples, "max-samples", d.MaxSamples, "most batches per size and backend")
	fs.StringVar(&f.estimator, "estimator", d.Estimator, "mean (with standard deviation) or median (with MAD)")
	fs.Int64Var(&f.seed, "seed", d.Seed, "key generator seed, 0 for time based")
	fs.IntVar(&f.keySpace, "key-space", d.KeySpace, "draw keys from [0, key-space), 0 for the full int32 range")
	fs.StringSliceVar(&f.backends, "backends", d.Backends, "backends to compare, in output column order")
	fs.StringVar(&f.output, "output", d.Output, "write results to this file instead of stdout")
	fs.StringVar(&f.sqlite, "sqlite", d.SQLite, "also record the run in this SQLite database")
	fs.BoolVar(&f.progress, "progress", d.Progress, "show a progress bar on stderr")
	fs.BoolVar(&f.header, "header", false, "start the output with a column header comment")
}

// apply copies the flags the user set over the loaded configuration.
func (f *benchFlags) apply(fs *pflag.FlagSet, c *BenchConfig) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("min", func() { c.MinN = f.min })
	set("max", func() { c.MaxN = f.max })
	set("points", func() { c.Points = f.points })
	set("error-max", func() { c.ErrorMax = f.errorMax })
	set("min-samples", func() { c.MinSamples = f.minSamples })
	set("max-samples", func() { c.MaxSamples = f.maxSamples })
	set("estimator", func() { c.Estimator = f.estimator })
	set("seed", func() { c.Seed = f.seed })
	set("key-space", func() { c.KeySpace = f.keySpace })
	set("backends", func() { c.Backends = f.backends })
	set("output", func() { c.Output = f.output })
	set("sqlite", func() { c.SQLite = f.sqlite })
	set("progress", func() { c.Progress = f.progress })
}

func newBenchCommand(app *cli) *cobra.Command {
	flags := &benchFlags{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark find-or-insert cost across backends",
		Long: `Bench measures nanoseconds per find-or-insert operation for each backend at
geometrically spaced workload sizes and prints one line per size:

  n loc_1 spread_1 loc_2 spread_2 ...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd.Flags(), &app.cfg.Bench)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runBench(ctx, app, flags.header, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func runBench(ctx context.Context, app *cli, header bool, stdout, stderr io.Writer) error {
	cfg, err := app.cfg.harnessConfig()
	if err != nil {
		return err
	}
	log := logrus.NewEntry(app.log).WithField("component", "bench")

	h, err := bench.New(cfg, bench.WithLogger(log))
	if err != nil {
		return err
	}

	out := stdout
	if path := app.cfg.Bench.Output; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return merry.Prependf(err, "creating %s", path)
		}
		defer f.Close()
		out = f
	}
	text := bench.NewTextSink(out)
	if header {
		if err := text.Header(cfg.Backends); err != nil {
			return err
		}
	}
	sinks := []bench.Sink{text}

	if path := app.cfg.Bench.SQLite; path != "" {
		store, err := bench.OpenStore(path)
		if err != nil {
			return err
		}
		defer store.Close()
		runID, sink, err := store.BeginRun(h)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"run": runID, "db": path}).Info("recording run")
		sinks = append(sinks, sink)
	}

	if app.cfg.Bench.Progress {
		bar := progressbar.NewOptions(cfg.Points,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("measuring"),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(stderr)
			}),
		)
		sinks = append(sinks, bench.SinkFunc(func(r bench.Record) error {
			bar.Describe(fmt.Sprintf("n=%s", humanize.Comma(int64(r.N))))
			return bar.Add(1)
		}))
	}

	started := time.Now()
	if err := h.Run(ctx, bench.MultiSink(sinks...)); err != nil {
		if merry.Is(err, context.Canceled) {
			log.Warn("benchmark interrupted")
		}
		return err
	}
	log.WithField("took", humanize.RelTime(started, time.Now(), "", "")).Info("done")
	return nil
}
