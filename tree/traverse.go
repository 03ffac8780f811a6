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
	"iter"
	"strings"
)

// links describes how to walk one node type. none is the value that marks an
// absent child: nil for BST and AVL, the shared sentinel for RBT.
type links[N comparable] struct {
	none  N
	left  func(N) N
	right func(N) N
	entry func(N) Entry
}

// preorder walks root, left, right with an explicit stack so that degenerate
// BSTs do not grow the goroutine stack. root is read when ranging starts.
func (l links[N]) preorder(root func() N) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		var stack []N
		if r := root(); r != l.none {
			stack = append(stack, r)
		}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(l.entry(n)) {
				return
			}
			// right is pushed first so the left subtree is visited first
			if r := l.right(n); r != l.none {
				stack = append(stack, r)
			}
			if c := l.left(n); c != l.none {
				stack = append(stack, c)
			}
		}
	}
}

func (l links[N]) inorder(root func() N) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		var stack []N
		n := root()
		for n != l.none || len(stack) > 0 {
			for n != l.none {
				stack = append(stack, n)
				n = l.left(n)
			}
			n = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(l.entry(n)) {
				return
			}
			n = l.right(n)
		}
	}
}

// show writes the subtree at n in prefix notation, one token per node and
// NULL for every absent child.
func (l links[N]) show(sb *strings.Builder, n N, token func(*strings.Builder, N)) {
	if n == l.none {
		writeNull(sb)
		return
	}
	token(sb, n)
	l.show(sb, l.left(n), token)
	l.show(sb, l.right(n), token)
}

// height counts nodes on the longest root-to-leaf path.
func (l links[N]) height(n N) int {
	if n == l.none {
		return 0
	}
	return max(l.height(l.left(n)), l.height(l.right(n))) + 1
}
