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

type rbNode struct {
	key                 int
	value               string
	color               Color
	left, right, parent *rbNode
}

// sentinel stands in for every absent child and for the parent of the root
// in every RBT. It is BLACK and never written to: insertion only ever
// recolours or relinks real nodes.
var sentinel = &rbNode{color: Black}

var rbLinks = links[*rbNode]{
	none:  sentinel,
	left:  func(n *rbNode) *rbNode { return n.left },
	right: func(n *rbNode) *rbNode { return n.right },
	entry: func(n *rbNode) Entry { return Entry{Key: n.key, Value: n.value, Color: n.color} },
}

// RBTree is a red-black tree in the CLRS formulation. Parent pointers are
// navigational only; the tree is owned through root and child links.
type RBTree struct {
	root      *rbNode
	nil       *rbNode
	count     int
	rotations uint64
}

// NewRBTree returns an empty tree whose root is the shared sentinel.
func NewRBTree() *RBTree {
	return &RBTree{root: sentinel, nil: sentinel}
}

func (t *RBTree) Kind() Kind { return KindRBT }

func (t *RBTree) Len() int { return t.count }

func (t *RBTree) Rotations() uint64 { return t.rotations }

func (t *RBTree) Height() int { return rbLinks.height(t.root) }

func (t *RBTree) Find(key int) (string, bool) {
	n := t.root
	for n != t.nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return n.value, true
		}
	}
	return "", false
}

// Insert links a RED leaf at the BST position for key and repairs the
// colouring with insertFixup.
func (t *RBTree) Insert(key int, value string) bool {
	y := t.nil
	x := t.root
	for x != t.nil {
		y = x
		switch {
		case key < x.key:
			x = x.left
		case key > x.key:
			x = x.right
		default:
			return false
		}
	}

	z := &rbNode{
		key:    key,
		value:  value,
		color:  Red,
		left:   t.nil,
		right:  t.nil,
		parent: y,
	}
	if y == t.nil {
		t.root = z
	} else if key < y.key {
		y.left = z
	} else {
		y.right = z
	}

	t.insertFixup(z)
	t.count++
	return true
}

func (t *RBTree) insertFixup(z *rbNode) {
	for z.parent.color == Red {
		// z.parent is RED so it is not the root and z has a grandparent.
		gp := z.parent.parent
		if z.parent == gp.left {
			uncle := gp.right
			if uncle.color == Red {
				z.parent.color = Black
				uncle.color = Black
				gp.color = Red
				z = gp
				continue
			}
			if z == z.parent.right {
				z = z.parent
				t.rotateLeft(z)
			}
			z.parent.color = Black
			z.parent.parent.color = Red
			t.rotateRight(z.parent.parent)
		} else {
			uncle := gp.left
			if uncle.color == Red {
				z.parent.color = Black
				uncle.color = Black
				gp.color = Red
				z = gp
				continue
			}
			if z == z.parent.left {
				z = z.parent
				t.rotateRight(z)
			}
			z.parent.color = Black
			z.parent.parent.color = Red
			t.rotateLeft(z.parent.parent)
		}
	}
	// The loop never looks at the root's colour, case 1 may have painted it.
	t.root.color = Black
}

/*
Left rotation around x:

	  P                P
	  |                |
	  x                y
	 / \              / \
	A   y     ->     x   C
	   / \          / \
	  B   C        A   B
*/
func (t *RBTree) rotateLeft(x *rbNode) {
	y := x.right
	x.right = y.left
	if y.left != t.nil {
		y.left.parent = x
	}
	t.replaceChild(x, y)
	y.left = x
	x.parent = y
	t.rotations++
}

func (t *RBTree) rotateRight(y *rbNode) {
	x := y.left
	y.left = x.right
	if x.right != t.nil {
		x.right.parent = y
	}
	t.replaceChild(y, x)
	x.right = y
	y.parent = x
	t.rotations++
}

// replaceChild puts v where u hangs from its parent, or makes v the root.
func (t *RBTree) replaceChild(u, v *rbNode) {
	v.parent = u.parent
	switch {
	case u.parent == t.nil:
		t.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
}

func (t *RBTree) Delete(key int) (bool, error) {
	return false, ErrDeleteUnsupported
}

// Clear drops every node. The sentinel is shared and outlives the tree.
func (t *RBTree) Clear() {
	t.root = t.nil
	t.count = 0
}

func (t *RBTree) Preorder() iter.Seq[Entry] {
	return rbLinks.preorder(func() *rbNode { return t.root })
}

func (t *RBTree) Ascend() iter.Seq[Entry] {
	return rbLinks.inorder(func() *rbNode { return t.root })
}

func (t *RBTree) show(sb *strings.Builder) {
	rbLinks.show(sb, t.root, func(sb *strings.Builder, n *rbNode) {
		writeEntry(sb, n.key, n.value)
		sb.WriteByte(':')
		sb.WriteString(n.color.String())
	})
}

// Validate checks ordering, root colour, the red-red rule, equal black
// height on every path and the consistency of parent links.
func (t *RBTree) Validate() error {
	if err := checkOrder(t, t.count); err != nil {
		return err
	}
	if sentinel.color != Black {
		return violation(0, "sentinel is not black")
	}
	if t.root == t.nil {
		return nil
	}
	if t.root.color != Black {
		return violation(t.root.key, "root %d is red", t.root.key)
	}
	if t.root.parent != t.nil {
		return violation(t.root.key, "root %d has a parent", t.root.key)
	}
	_, err := t.blackHeight(t.root)
	return err
}

func (t *RBTree) blackHeight(n *rbNode) (int, error) {
	if n == t.nil {
		return 1, nil
	}
	for _, child := range [2]*rbNode{n.left, n.right} {
		if child == t.nil {
			continue
		}
		if child.parent != n {
			return 0, violation(child.key, "node %d does not point back to parent %d", child.key, n.key)
		}
		if n.color == Red && child.color == Red {
			return 0, violation(child.key, "red node %d has red parent %d", child.key, n.key)
		}
	}
	lh, err := t.blackHeight(n.left)
	if err != nil {
		return 0, err
	}
	rh, err := t.blackHeight(n.right)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, violation(n.key, "node %d has black heights %d and %d", n.key, lh, rh)
	}
	if n.color == Black {
		lh++
	}
	return lh, nil
}
