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

import (
	"encoding/binary"
	"iter"

	"github.com/willf/bloom"
)

const (
	DefaultBloomEstimate  = 1 << 20
	DefaultBloomFalseRate = 0.01
)

// Filtered puts a bloom filter in front of another backend. Find answers
// definite misses from the filter without descending the tree. Deleted keys
// stay in the filter until Clear and only cost a descent.
type Filtered struct {
	Map
	filter  *bloom.BloomFilter
	skipped uint64
}

// NewFiltered wraps inner with a filter sized for estimate keys at the given
// false-positive rate.
func NewFiltered(inner Map, estimate uint, falseRate float64) *Filtered {
	if estimate == 0 {
		estimate = DefaultBloomEstimate
	}
	if falseRate <= 0 || falseRate >= 1 {
		falseRate = DefaultBloomFalseRate
	}
	f := &Filtered{Map: inner, filter: bloom.NewWithEstimates(estimate, falseRate)}
	for e := range inner.Ascend() {
		f.filter.Add(keyBytes(e.Key))
	}
	return f
}

func keyBytes(key int) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))
	return buf[:]
}

func (f *Filtered) Kind() Kind { return f.Map.Kind() + "+bloom" }

func (f *Filtered) Insert(key int, value string) bool {
	if !f.Map.Insert(key, value) {
		return false
	}
	f.filter.Add(keyBytes(key))
	return true
}

func (f *Filtered) Find(key int) (string, bool) {
	if !f.filter.Test(keyBytes(key)) {
		f.skipped++
		return "", false
	}
	return f.Map.Find(key)
}

func (f *Filtered) Clear() {
	f.Map.Clear()
	f.filter.ClearAll()
}

// Skipped reports how many lookups the filter answered on its own.
func (f *Filtered) Skipped() uint64 { return f.skipped }

// Unwrap returns the filtered backend.
func (f *Filtered) Unwrap() Map { return f.Map }

func (f *Filtered) Validate() error { return Validate(f.Map) }

func (f *Filtered) Preorder() iter.Seq[Entry] { return f.Map.Preorder() }

func (f *Filtered) Height() int { return Height(f.Map) }
