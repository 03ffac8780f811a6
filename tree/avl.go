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
	"strconv"
	"strings"
)

type AVLNode struct {
	Key    int
	Value  string
	Height int // 1 for a leaf, 0 stands for an absent child
	Left   *AVLNode
	Right  *AVLNode
}

var avlLinks = links[*AVLNode]{
	none:  nil,
	left:  func(n *AVLNode) *AVLNode { return n.Left },
	right: func(n *AVLNode) *AVLNode { return n.Right },
	entry: func(n *AVLNode) Entry { return Entry{Key: n.Key, Value: n.Value, Height: n.Height} },
}

// AVLTree keeps |height(left) - height(right)| <= 1 at every node by
// rebalancing on the way back up from each insertion.
type AVLTree struct {
	Root      *AVLNode
	count     int
	rotations uint64
}

func NewAVLTree() *AVLTree {
	return &AVLTree{Root: nil}
}

func (tree *AVLTree) Kind() Kind { return KindAVL }

func (tree *AVLTree) Len() int { return tree.count }

func (tree *AVLTree) Rotations() uint64 { return tree.rotations }

func (tree *AVLTree) Height() int { return tree.getHeight(tree.Root) }

func (tree *AVLTree) getHeight(node *AVLNode) int {
	if node == nil {
		return 0
	}
	return node.Height
}

func (tree *AVLTree) updateHeight(node *AVLNode) {
	node.Height = max(tree.getHeight(node.Left), tree.getHeight(node.Right)) + 1
}

func (tree *AVLTree) getBalanceFactor(node *AVLNode) int {
	if node == nil {
		return 0
	}
	return tree.getHeight(node.Left) - tree.getHeight(node.Right)
}

func (tree *AVLTree) rotateLeft(node *AVLNode) *AVLNode {
	pivot := node.Right

	node.Right = pivot.Left
	pivot.Left = node

	// node is now below pivot, so its height must be fixed first
	tree.updateHeight(node)
	tree.updateHeight(pivot)

	tree.rotations++
	return pivot
}

func (tree *AVLTree) rotateRight(node *AVLNode) *AVLNode {
	pivot := node.Left

	node.Left = pivot.Right
	pivot.Right = node

	tree.updateHeight(node)
	tree.updateHeight(pivot)

	tree.rotations++
	return pivot
}

func (tree *AVLTree) Insert(key int, value string) bool {
	var inserted bool
	tree.Root = tree.insertRecursive(tree.Root, key, value, &inserted)
	if inserted {
		tree.count++
	}
	return inserted
}

func (tree *AVLTree) insertRecursive(node *AVLNode, key int, value string, inserted *bool) *AVLNode {
	if node == nil {
		*inserted = true
		return &AVLNode{Key: key, Value: value, Height: 1}
	}

	if key < node.Key {
		node.Left = tree.insertRecursive(node.Left, key, value, inserted)
	} else if key > node.Key {
		node.Right = tree.insertRecursive(node.Right, key, value, inserted)
	} else {
		// Duplicate key: nothing below changed, so nothing to rebalance.
		return node
	}
	if !*inserted {
		return node
	}

	tree.updateHeight(node)
	return tree.rebalance(node)
}

// rebalance applies at most one of the four rotation cases, picked from the
// balance factor of node and of its heavier child.
func (tree *AVLTree) rebalance(node *AVLNode) *AVLNode {
	balanceFactor := tree.getBalanceFactor(node)

	// Left-heavy
	if balanceFactor > 1 {
		if tree.getBalanceFactor(node.Left) >= 0 {
			return tree.rotateRight(node)
		}
		// Left-Right case
		node.Left = tree.rotateLeft(node.Left)
		return tree.rotateRight(node)
	}

	// Right-heavy
	if balanceFactor < -1 {
		if tree.getBalanceFactor(node.Right) <= 0 {
			return tree.rotateLeft(node)
		}
		// Right-Left case
		node.Right = tree.rotateRight(node.Right)
		return tree.rotateLeft(node)
	}

	return node
}

// Find looks for the node with the given key in the AVL tree.
func (tree *AVLTree) Find(key int) (string, bool) {
	return searchNode(tree.Root, key)
}

// searchNode is a helper function that traverses the AVL tree recursively.
func searchNode(node *AVLNode, key int) (string, bool) {
	if node == nil {
		return "", false
	}

	if key < node.Key {
		return searchNode(node.Left, key)
	} else if key > node.Key {
		return searchNode(node.Right, key)
	}
	return node.Value, true
}

func (tree *AVLTree) Delete(key int) (bool, error) {
	return false, ErrDeleteUnsupported
}

func (tree *AVLTree) Clear() {
	tree.Root = nil
	tree.count = 0
}

func (tree *AVLTree) Preorder() iter.Seq[Entry] {
	return avlLinks.preorder(func() *AVLNode { return tree.Root })
}

func (tree *AVLTree) Ascend() iter.Seq[Entry] {
	return avlLinks.inorder(func() *AVLNode { return tree.Root })
}

func (tree *AVLTree) show(sb *strings.Builder) {
	avlLinks.show(sb, tree.Root, func(sb *strings.Builder, n *AVLNode) {
		writeEntry(sb, n.Key, n.Value)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(n.Height))
	})
}

// Validate checks ordering, the stored heights and the balance factor of
// every node.
func (tree *AVLTree) Validate() error {
	if err := checkOrder(tree, tree.count); err != nil {
		return err
	}
	_, err := tree.validateNode(tree.Root)
	return err
}

func (tree *AVLTree) validateNode(node *AVLNode) (int, error) {
	if node == nil {
		return 0, nil
	}
	lh, err := tree.validateNode(node.Left)
	if err != nil {
		return 0, err
	}
	rh, err := tree.validateNode(node.Right)
	if err != nil {
		return 0, err
	}
	if h := max(lh, rh) + 1; node.Height != h {
		return 0, violation(node.Key, "node %d stores height %d, actual %d", node.Key, node.Height, h)
	}
	if bf := lh - rh; bf < -1 || bf > 1 {
		return 0, violation(node.Key, "node %d has balance factor %d", node.Key, bf)
	}
	return node.Height, nil
}
