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

package bench

import (
	"math"
	"slices"
	"strings"

	"github.com/ansel1/merry"
)

// Estimator selects how a sample set is reduced to a location/spread pair.
type Estimator string

const (
	// EstimatorMean reports the arithmetic mean and the population standard
	// deviation.
	EstimatorMean Estimator = "mean"
	// EstimatorMedian reports the median and the median absolute deviation,
	// both insensitive to a few abnormally slow batches.
	EstimatorMedian Estimator = "median"
)

var ErrUnknownEstimator = merry.New("unknown estimator")

func ParseEstimator(s string) (Estimator, error) {
	switch e := Estimator(strings.ToLower(strings.TrimSpace(s))); e {
	case EstimatorMean, EstimatorMedian:
		return e, nil
	case "":
		return EstimatorMean, nil
	}
	return "", merry.WithUserMessagef(ErrUnknownEstimator, "unknown estimator %q (want mean or median)", s)
}

// Summary is a location statistic with its spread.
type Summary struct {
	Location float64
	Spread   float64
}

// Reduce summarises samples without modifying them.
func (e Estimator) Reduce(samples []float64) Summary {
	if e == EstimatorMedian {
		return MedianMAD(slices.Clone(samples))
	}
	return MeanStdDev(samples)
}

// MeanStdDev returns the mean and the population standard deviation.
func MeanStdDev(samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	var sum float64
	for _, x := range samples {
		sum += x
	}
	mean := sum / float64(len(samples))

	var sq float64
	for _, x := range samples {
		d := x - mean
		sq += d * d
	}
	return Summary{Location: mean, Spread: math.Sqrt(sq / float64(len(samples)))}
}

// MedianMAD returns the median and the (unscaled) median absolute deviation.
// It works in place: samples is reordered and then overwritten with the
// absolute deviations.
func MedianMAD(samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	med := Median(samples)
	for i, x := range samples {
		samples[i] = math.Abs(x - med)
	}
	return Summary{Location: med, Spread: Median(samples)}
}

// Median reorders xs with quickselect and returns its median. For an even
// count it is the mean of the two middle values.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	k := n / 2
	upper := selectKth(xs, k)
	if n%2 == 1 {
		return upper
	}
	// selectKth leaves the k smallest values in xs[:k].
	lower := xs[0]
	for _, x := range xs[1:k] {
		lower = max(lower, x)
	}
	return (lower + upper) / 2
}

// selectKth partially orders xs so that xs[k] holds the k-th smallest value,
// everything before it is <= and everything after it is >=.
func selectKth(xs []float64, k int) float64 {
	lo, hi := 0, len(xs)-1
	for lo < hi {
		pivot := medianOfThree(xs[lo], xs[lo+(hi-lo)/2], xs[hi])
		lt, gt := partition3(xs, lo, hi, pivot)
		switch {
		case k < lt:
			hi = lt - 1
		case k > gt:
			lo = gt + 1
		default:
			return pivot
		}
	}
	return xs[k]
}

// partition3 splits xs[lo:hi+1] into < pivot, == pivot and > pivot runs and
// returns the bounds of the middle run. Runs of equal samples, common with
// coarse clocks, are settled in a single pass.
func partition3(xs []float64, lo, hi int, pivot float64) (lt, gt int) {
	lt, gt = lo, hi
	for i := lo; i <= gt; {
		switch {
		case xs[i] < pivot:
			xs[lt], xs[i] = xs[i], xs[lt]
			lt++
			i++
		case xs[i] > pivot:
			xs[i], xs[gt] = xs[gt], xs[i]
			gt--
		default:
			i++
		}
	}
	return lt, gt
}

func medianOfThree(a, b, c float64) float64 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	return max(a, b)
}
