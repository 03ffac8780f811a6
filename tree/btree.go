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

	"github.com/google/btree"
)

// DefaultBTreeDegree is used when Options.BTreeDegree is not positive.
const DefaultBTreeDegree = 32

type btreeItem struct {
	key   int
	value string
}

func lessItem(a, b btreeItem) bool {
	return a.key < b.key
}

// BTree adapts google/btree as a reference backend. It has no binary node
// shape, so Preorder yields entries in ascending order like Ascend.
type BTree struct {
	tree   *btree.BTreeG[btreeItem]
	degree int
}

func NewBTree(degree int) *BTree {
	if degree < 2 {
		degree = DefaultBTreeDegree
	}
	return &BTree{tree: btree.NewG(degree, lessItem), degree: degree}
}

func (t *BTree) Kind() Kind { return KindBTree }

func (t *BTree) Len() int { return t.tree.Len() }

func (t *BTree) Insert(key int, value string) bool {
	item := btreeItem{key: key, value: value}
	if t.tree.Has(item) {
		return false
	}
	t.tree.ReplaceOrInsert(item)
	return true
}

func (t *BTree) Find(key int) (string, bool) {
	item, ok := t.tree.Get(btreeItem{key: key})
	if !ok {
		return "", false
	}
	return item.value, true
}

func (t *BTree) Delete(key int) (bool, error) {
	_, ok := t.tree.Delete(btreeItem{key: key})
	return ok, nil
}

func (t *BTree) Clear() {
	t.tree.Clear(false)
}

func (t *BTree) Preorder() iter.Seq[Entry] {
	return t.Ascend()
}

func (t *BTree) Ascend() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		t.tree.Ascend(func(item btreeItem) bool {
			return yield(Entry{Key: item.key, Value: item.value})
		})
	}
}
