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
	"math/rand"

	"github.com/cybrota/treebench/tree"
)

// DefaultPayload is the value stored for every key the workload inserts.
const DefaultPayload = "data"

// Outcome counts the lookups of one find-or-insert batch.
type Outcome struct {
	Hits   int
	Misses int
}

// Workload is a find-or-insert batch over pseudo-random keys.
type Workload struct {
	// KeySpace bounds keys to [0, KeySpace). Zero draws from the full
	// non-negative int32 range, where hits are rare.
	KeySpace int
	Payload  string
}

// Run performs n operations on m: look the key up, and insert it on a miss.
// Afterwards Hits+Misses == n and m holds Misses more keys.
func (w Workload) Run(m tree.Map, n int, rng *rand.Rand) Outcome {
	payload := w.Payload
	if payload == "" {
		payload = DefaultPayload
	}
	var out Outcome
	for i := 0; i < n; i++ {
		key := w.key(rng)
		if _, ok := m.Find(key); ok {
			out.Hits++
			continue
		}
		m.Insert(key, payload)
		out.Misses++
	}
	return out
}

func (w Workload) key(rng *rand.Rand) int {
	if w.KeySpace > 0 {
		return rng.Intn(w.KeySpace)
	}
	return int(rng.Int31())
}

// SearchAndInsert runs the default workload.
func SearchAndInsert(m tree.Map, n int, rng *rand.Rand) Outcome {
	return Workload{}.Run(m, n, rng)
}
