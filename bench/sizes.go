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

	"github.com/ansel1/merry"
)

var ErrBadSizes = merry.New("invalid workload size range")

// Sizes returns points workload sizes spaced geometrically from minN to maxN:
// n_j = minN * b^j with b = (maxN/minN)^(1/(points-1)). The last size is maxN
// exactly. Small ranges may repeat a size.
func Sizes(minN, maxN, points int) ([]int, error) {
	switch {
	case minN < 1:
		return nil, merry.WithUserMessagef(ErrBadSizes, "minimum size %d must be positive", minN)
	case maxN < minN:
		return nil, merry.WithUserMessagef(ErrBadSizes, "maximum size %d is below minimum %d", maxN, minN)
	case points < 1:
		return nil, merry.WithUserMessagef(ErrBadSizes, "need at least one point, got %d", points)
	}
	if points == 1 {
		return []int{minN}, nil
	}

	b := Base(minN, maxN, points)
	sizes := make([]int, points)
	for j := range sizes {
		sizes[j] = int(math.Round(float64(minN) * math.Pow(b, float64(j))))
	}
	sizes[0], sizes[points-1] = minN, maxN
	return sizes, nil
}

// Base is the common ratio between consecutive workload sizes.
func Base(minN, maxN, points int) float64 {
	if points < 2 {
		return 1
	}
	return math.Exp((math.Log(float64(maxN)) - math.Log(float64(minN))) / float64(points-1))
}
