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

// bstNode is a node of the unbalanced binary search tree.
type bstNode struct {
	key         int
	value       string
	left, right *bstNode
}

var bstLinks = links[*bstNode]{
	none:  nil,
	left:  func(n *bstNode) *bstNode { return n.left },
	right: func(n *bstNode) *bstNode { return n.right },
	entry: func(n *bstNode) Entry { return Entry{Key: n.key, Value: n.value} },
}

// BST is a plain binary search tree. Its depth depends on insertion order and
// degrades to a list on sorted input. It is the only backend that supports
// Delete.
type BST struct {
	root  *bstNode
	count int
}

// NewBST returns an empty BST.
func NewBST() *BST {
	return &BST{}
}

func (t *BST) Kind() Kind { return KindBST }

func (t *BST) Len() int { return t.count }

// Insert descends iteratively to the empty link where key belongs and
// attaches a new leaf there.
func (t *BST) Insert(key int, value string) bool {
	link := &t.root
	for *link != nil {
		current := *link
		switch {
		case key < current.key:
			link = &current.left
		case key > current.key:
			link = &current.right
		default:
			return false
		}
	}
	*link = &bstNode{key: key, value: value}
	t.count++
	return true
}

func (t *BST) Find(key int) (string, bool) {
	current := t.root
	for current != nil {
		switch {
		case key < current.key:
			current = current.left
		case key > current.key:
			current = current.right
		default:
			return current.value, true
		}
	}
	return "", false
}

func (t *BST) Delete(key int) (bool, error) {
	var deleted bool
	t.root = t.deleteRecursive(t.root, key, &deleted)
	if deleted {
		t.count--
	}
	return deleted, nil
}

func (t *BST) deleteRecursive(node *bstNode, key int, deleted *bool) *bstNode {
	if node == nil {
		return nil
	}

	if key < node.key {
		node.left = t.deleteRecursive(node.left, key, deleted)
		return node
	}
	if key > node.key {
		node.right = t.deleteRecursive(node.right, key, deleted)
		return node
	}

	*deleted = true
	// No child or a single child: the child (possibly nil) takes our place.
	if node.left == nil {
		return node.right
	}
	if node.right == nil {
		return node.left
	}
	// Two children: copy the in-order successor and remove it from the right
	// subtree, where it has no left child.
	successor := t.findMin(node.right)
	node.key = successor.key
	node.value = successor.value
	node.right = t.deleteRecursive(node.right, successor.key, new(bool))
	return node
}

func (t *BST) findMin(node *bstNode) *bstNode {
	for node.left != nil {
		node = node.left
	}
	return node
}

func (t *BST) Clear() {
	t.root = nil
	t.count = 0
}

func (t *BST) Height() int {
	return bstLinks.height(t.root)
}

func (t *BST) Preorder() iter.Seq[Entry] {
	return bstLinks.preorder(func() *bstNode { return t.root })
}

func (t *BST) Ascend() iter.Seq[Entry] {
	return bstLinks.inorder(func() *bstNode { return t.root })
}

func (t *BST) show(sb *strings.Builder) {
	bstLinks.show(sb, t.root, func(sb *strings.Builder, n *bstNode) {
		writeEntry(sb, n.key, n.value)
	})
}

// Validate checks that keys are strictly increasing in order and that the
// node count matches Len.
func (t *BST) Validate() error {
	return checkOrder(t, t.count)
}
