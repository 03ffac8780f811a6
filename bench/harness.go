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

// Package bench measures the amortized cost of find-or-insert workloads on
// tree backends at geometrically spaced workload sizes.
//
// For every size and backend the harness repeats batches (fresh map, n
// operations, clear) until the time spent dwarfs the clock resolution and a
// minimum number of samples has been taken, then reduces the per-operation
// samples with the configured Estimator.
package bench

import (
	"context"
	"math/rand"
	"time"

	"github.com/ansel1/merry"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/cybrota/treebench/tree"
)

var ErrBadConfig = merry.New("invalid benchmark configuration")

// Config drives a benchmark run.
type Config struct {
	MinN   int
	MaxN   int
	Points int
	// ErrorMax is the largest tolerated ratio of clock resolution to
	// measured time.
	ErrorMax   float64
	MinSamples int
	// MaxSamples bounds the samples kept for one size and backend.
	MaxSamples int
	Estimator  Estimator
	// Seed for the key generator. Zero seeds from the wall clock.
	Seed     int64
	KeySpace int
	Backends []string
	Tree     tree.Options
}

// DefaultConfig mirrors the classic setup: 100 points from 1e3 to 1e6
// operations at 1% maximum relative error.
func DefaultConfig() Config {
	return Config{
		MinN:       1000,
		MaxN:       1000000,
		Points:     100,
		ErrorMax:   0.01,
		MinSamples: 5,
		MaxSamples: 100000,
		Estimator:  EstimatorMean,
		Backends:   []string{"bst", "avl", "rbt"},
	}
}

func (c Config) Validate() error {
	if _, err := Sizes(c.MinN, c.MaxN, c.Points); err != nil {
		return err
	}
	switch {
	case c.ErrorMax <= 0:
		return merry.WithUserMessagef(ErrBadConfig, "error_max must be positive, got %v", c.ErrorMax)
	case c.MinSamples < 1:
		return merry.WithUserMessagef(ErrBadConfig, "min_samples must be at least 1, got %d", c.MinSamples)
	case c.MaxSamples < c.MinSamples:
		return merry.WithUserMessagef(ErrBadConfig, "max_samples %d is below min_samples %d", c.MaxSamples, c.MinSamples)
	case c.KeySpace < 0:
		return merry.WithUserMessagef(ErrBadConfig, "key_space must not be negative, got %d", c.KeySpace)
	case len(c.Backends) == 0:
		return merry.WithUserMessage(ErrBadConfig, "no backends to measure")
	}
	if _, err := ParseEstimator(string(c.Estimator)); err != nil {
		return err
	}
	for _, name := range c.Backends {
		if _, err := tree.New(name, c.Tree); err != nil {
			return err
		}
	}
	return nil
}

// Series holds the raw samples for one backend at one size, in nanoseconds
// per operation. Samples are kept unreduced so series can be merged.
type Series struct {
	Backend string
	N       int
	Samples []float64
	Elapsed time.Duration
	// Last is the outcome of the final batch.
	Last Outcome
}

// Result is the reduced form of a Series.
type Result struct {
	Backend string
	Summary
	Samples int
	Hits    int
	Misses  int
}

// Record is one data point: a workload size and one Result per backend, in
// configured backend order.
type Record struct {
	Index   int
	N       int
	Results []Result
}

// Harness runs the measurements. It is not safe for concurrent use: the
// random generator and the clock are shared by every batch.
type Harness struct {
	cfg        Config
	clock      Clock
	rng        *rand.Rand
	workload   Workload
	resolution time.Duration
	log        *logrus.Entry
}

type Option func(*Harness)

// WithClock replaces the system clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(h *Harness) { h.clock = c }
}

func WithLogger(log *logrus.Entry) Option {
	return func(h *Harness) { h.log = log }
}

// New validates cfg, seeds the generator and calibrates the clock.
func New(cfg Config, opts ...Option) (*Harness, error) {
	if cfg.Estimator == "" {
		cfg.Estimator = EstimatorMean
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := &Harness{
		cfg:      cfg,
		clock:    SystemClock,
		workload: Workload{KeySpace: cfg.KeySpace},
		log:      logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.cfg.Seed == 0 {
		h.cfg.Seed = time.Now().UnixNano()
	}
	h.rng = rand.New(rand.NewSource(h.cfg.Seed))
	h.resolution = Resolution(h.clock)

	h.log.WithFields(logrus.Fields{
		"resolution": h.resolution,
		"threshold":  h.Threshold(),
		"seed":       h.cfg.Seed,
		"estimator":  h.cfg.Estimator,
	}).Info("clock calibrated")
	return h, nil
}

func (h *Harness) Config() Config { return h.cfg }

func (h *Harness) Resolution() time.Duration { return h.resolution }

// Threshold is the time a series must exceed before it may stop:
// resolution/ErrorMax + resolution.
func (h *Harness) Threshold() time.Duration {
	return time.Duration(float64(h.resolution)/h.cfg.ErrorMax) + h.resolution
}

// Measure collects samples for backend at size n. Batches continue until
// the series has run longer than Threshold and holds MinSamples samples, or
// until MaxSamples is reached.
func (h *Harness) Measure(ctx context.Context, backend string, n int) (Series, error) {
	s := Series{Backend: backend, N: n}
	threshold := h.Threshold()

	start := h.clock.Now()
	for {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		m, err := tree.New(backend, h.cfg.Tree)
		if err != nil {
			return s, err
		}

		batchStart := h.clock.Now()
		s.Last = h.workload.Run(m, n, h.rng)
		end := h.clock.Now()
		m.Clear()

		s.Samples = append(s.Samples, float64(end.Sub(batchStart).Nanoseconds())/float64(n))
		s.Elapsed = end.Sub(start)

		if len(s.Samples) >= h.cfg.MaxSamples {
			h.log.WithFields(logrus.Fields{
				"backend": backend,
				"n":       n,
			}).Warn("sample limit reached before the error threshold")
			break
		}
		if s.Elapsed > threshold && len(s.Samples) >= h.cfg.MinSamples {
			break
		}
	}
	return s, nil
}

// Reduce turns a series into a Result with the configured estimator.
func (h *Harness) Reduce(s Series) Result {
	return Result{
		Backend: s.Backend,
		Summary: h.cfg.Estimator.Reduce(s.Samples),
		Samples: len(s.Samples),
		Hits:    s.Last.Hits,
		Misses:  s.Last.Misses,
	}
}

// Point measures every configured backend at size n.
func (h *Harness) Point(ctx context.Context, index, n int) (Record, error) {
	rec := Record{Index: index, N: n, Results: make([]Result, 0, len(h.cfg.Backends))}
	for _, backend := range h.cfg.Backends {
		s, err := h.Measure(ctx, backend, n)
		if err != nil {
			return rec, err
		}
		r := h.Reduce(s)
		rec.Results = append(rec.Results, r)

		h.log.WithFields(logrus.Fields{
			"backend":  backend,
			"n":        humanize.Comma(int64(n)),
			"samples":  r.Samples,
			"elapsed":  s.Elapsed,
			"location": r.Location,
			"spread":   r.Spread,
		}).Debug("series measured")
	}
	return rec, nil
}

// Run measures every workload size in order and hands each record to sink.
func (h *Harness) Run(ctx context.Context, sink Sink) error {
	sizes, err := Sizes(h.cfg.MinN, h.cfg.MaxN, h.cfg.Points)
	if err != nil {
		return err
	}
	started := time.Now()
	for i, n := range sizes {
		rec, err := h.Point(ctx, i, n)
		if err != nil {
			return err
		}
		if err := sink.Write(rec); err != nil {
			return merry.Prepend(err, "writing benchmark record")
		}
	}
	h.log.WithFields(logrus.Fields{
		"points":   len(sizes),
		"backends": len(h.cfg.Backends),
		"took":     humanize.RelTime(started, time.Now(), "", ""),
	}).Info("benchmark finished")
	return nil
}
