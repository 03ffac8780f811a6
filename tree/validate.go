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

package tree

// checkOrder walks m in order and verifies strictly increasing keys and the
// expected entry count.
func checkOrder(m Map, want int) error {
	count := 0
	prev := 0
	for e := range m.Ascend() {
		if count > 0 && e.Key <= prev {
			return violation(e.Key, "key %d follows %d in order", e.Key, prev)
		}
		prev = e.Key
		count++
	}
	if count != want {
		return violation(prev, "walked %d entries, expected %d", count, want)
	}
	return nil
}

// Validate runs m's own checks when it has them, and the ordering check
// otherwise.
func Validate(m Map) error {
	if v, ok := m.(Validator); ok {
		return v.Validate()
	}
	return checkOrder(m, m.Len())
}
