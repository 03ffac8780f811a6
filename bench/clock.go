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

import "time"

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// Now carries the monotonic reading that time.Time.Sub prefers.
func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the process monotonic clock.
var SystemClock Clock = systemClock{}

// Resolution busy-polls c until its reading moves and returns the size of
// that step, the smallest interval c can tell apart.
func Resolution(c Clock) time.Duration {
	start := c.Now()
	for {
		if d := c.Now().Sub(start); d > 0 {
			return d
		}
	}
}
