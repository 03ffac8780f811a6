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

// Package tree provides in-memory ordered maps from int keys to short string
// values. Three binary search tree backends (plain BST, AVL and Red-Black)
// share the Map contract so they can be swapped freely by the REPL and
// measured side by side by the benchmark harness.
package tree

import (
	"iter"
	"strconv"
	"strings"
)

// Kind names a backend implementation.
type Kind string

const (
	KindBST   Kind = "bst"
	KindAVL   Kind = "avl"
	KindRBT   Kind = "rbt"
	KindBTree Kind = "btree"
	KindLLRB  Kind = "llrb"
)

// Color of a red-black node. The zero value is Black so the sentinel needs
// no explicit initialisation.
type Color uint8

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Entry is one key/value pair as seen by a traversal. Height is only set by
// the AVL backend and Color is only meaningful for the RBT backend.
type Entry struct {
	Key    int
	Value  string
	Height int
	Color  Color
}

// Map is the contract shared by every backend.
type Map interface {
	Kind() Kind
	// Insert adds key if it is absent. An existing key is left untouched and
	// Insert reports false.
	Insert(key int, value string) bool
	// Find returns the stored value and true, or "" and false when absent.
	Find(key int) (string, bool)
	// Delete removes key and reports whether it was present. Backends that do
	// not support removal return ErrDeleteUnsupported.
	Delete(key int) (bool, error)
	// Clear drops every node. The map behaves like a new one afterwards.
	Clear()
	Len() int
	// Preorder visits root, left subtree, right subtree. Every range over
	// the returned sequence starts again from the current root.
	Preorder() iter.Seq[Entry]
	// Ascend visits entries in strictly increasing key order.
	Ascend() iter.Seq[Entry]
}

// Validator is implemented by backends that can check their own structural
// invariants.
type Validator interface {
	Validate() error
}

// Rotator is implemented by self-balancing backends that count rotations.
type Rotator interface {
	Rotations() uint64
}

// Heighter is implemented by backends with a meaningful node height.
type Heighter interface {
	Height() int
}

// Height returns the height of m, or -1 when the backend has no notion of
// node height.
func Height(m Map) int {
	if h, ok := m.(Heighter); ok {
		return h.Height()
	}
	return -1
}

// Keys collects the keys of m in ascending order.
func Keys(m Map) []int {
	keys := make([]int, 0, m.Len())
	for e := range m.Ascend() {
		keys = append(keys, e.Key)
	}
	return keys
}

// shower is implemented by backends that can dump their own shape.
type shower interface {
	show(sb *strings.Builder)
}

// Show renders m in prefix (Polish) notation. Absent children are printed as
// NULL so the shape of the tree can be read back from the output. Backends
// without an exposed node shape list their entries in ascending order.
func Show(m Map) string {
	if u, ok := m.(interface{ Unwrap() Map }); ok {
		return Show(u.Unwrap())
	}
	var sb strings.Builder
	if s, ok := m.(shower); ok {
		s.show(&sb)
	} else {
		for e := range m.Preorder() {
			writeEntry(&sb, e.Key, e.Value)
		}
		if sb.Len() == 0 {
			writeNull(&sb)
		}
	}
	return sb.String()
}

// writeEntry appends "key:value" to sb, separated from any earlier token.
func writeEntry(sb *strings.Builder, key int, value string) {
	writeSep(sb)
	sb.WriteString(strconv.Itoa(key))
	sb.WriteByte(':')
	sb.WriteString(value)
}

func writeNull(sb *strings.Builder) {
	writeSep(sb)
	sb.WriteString("NULL")
}

func writeSep(sb *strings.Builder) {
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
}
