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
	"sort"
	"strings"

	"github.com/ansel1/merry"
)

// BloomSuffix appended to a backend name wraps it in a Filtered map.
const BloomSuffix = "+bloom"

// Options tunes the backends built by New. The zero value is usable.
type Options struct {
	BTreeDegree    int     `yaml:"btree_degree"`
	BloomEstimate  uint    `yaml:"bloom_estimate"`
	BloomFalseRate float64 `yaml:"bloom_false_rate"`
}

// Factory builds an empty backend.
type Factory func(opts Options) Map

var registry = map[Kind]Factory{
	KindBST:   func(Options) Map { return NewBST() },
	KindAVL:   func(Options) Map { return NewAVLTree() },
	KindRBT:   func(Options) Map { return NewRBTree() },
	KindBTree: func(opts Options) Map { return NewBTree(opts.BTreeDegree) },
	KindLLRB:  func(Options) Map { return NewLLRB() },
}

// Register adds or replaces a backend factory.
func Register(kind Kind, factory Factory) {
	registry[kind] = factory
}

// Kinds lists the registered backend names in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// New builds an empty backend by name. A name ending in "+bloom" wraps the
// named backend in a Filtered map.
func New(name string, opts Options) (Map, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	base, filtered := strings.CutSuffix(name, BloomSuffix)

	factory, ok := registry[Kind(base)]
	if !ok {
		err := merry.WithValue(ErrUnknownBackend, "backend", name)
		return nil, merry.WithUserMessagef(err, "unknown backend %q (known: %s)", name, joinKinds(Kinds()))
	}
	m := factory(opts)
	if filtered {
		m = NewFiltered(m, opts.BloomEstimate, opts.BloomFalseRate)
	}
	return m, nil
}

func joinKinds(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
