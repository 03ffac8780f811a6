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

	"github.com/NVIDIA/sortedmap"
	"github.com/ansel1/merry"
)

func compareInt(key1 sortedmap.Key, key2 sortedmap.Key) (result int, err error) {
	k1, ok := key1.(int)
	if !ok {
		err = merry.Errorf("compareInt(non-int,) not supported")
		return
	}
	k2, ok := key2.(int)
	if !ok {
		err = merry.Errorf("compareInt(int, non-int) not supported")
		return
	}
	switch {
	case k1 < k2:
		result = -1
	case k1 > k2:
		result = 1
	}
	return
}

// LLRB adapts the left-leaning red-black tree from NVIDIA/sortedmap as a
// reference backend. Errors from sortedmap can only come from compareInt,
// which every key passed here satisfies, so they are treated as bugs.
// Preorder yields entries in ascending order like Ascend.
type LLRB struct {
	tree sortedmap.LLRBTree
}

func NewLLRB() *LLRB {
	return &LLRB{tree: sortedmap.NewLLRBTree(compareInt, nil)}
}

func (t *LLRB) Kind() Kind { return KindLLRB }

func (t *LLRB) Len() int {
	n, err := t.tree.Len()
	mustLLRB(err, "Len")
	return n
}

func (t *LLRB) Insert(key int, value string) bool {
	ok, err := t.tree.Put(key, value)
	mustLLRB(err, "Put")
	return ok
}

func (t *LLRB) Find(key int) (string, bool) {
	value, ok, err := t.tree.GetByKey(key)
	mustLLRB(err, "GetByKey")
	if !ok {
		return "", false
	}
	return value.(string), true
}

func (t *LLRB) Delete(key int) (bool, error) {
	ok, err := t.tree.DeleteByKey(key)
	if err != nil {
		return false, merry.Wrap(err)
	}
	return ok, nil
}

func (t *LLRB) Clear() {
	t.tree = sortedmap.NewLLRBTree(compareInt, nil)
}

func (t *LLRB) Preorder() iter.Seq[Entry] {
	return t.Ascend()
}

func (t *LLRB) Ascend() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		n := t.Len()
		for i := 0; i < n; i++ {
			key, value, ok, err := t.tree.GetByIndex(i)
			mustLLRB(err, "GetByIndex")
			if !ok {
				return
			}
			if !yield(Entry{Key: key.(int), Value: value.(string)}) {
				return
			}
		}
	}
}

// Validate defers to sortedmap's own LLRB checks.
func (t *LLRB) Validate() error {
	if err := t.tree.Validate(); err != nil {
		return merry.WithMessage(ErrInvariant, err.Error())
	}
	return checkOrder(t, t.Len())
}

func mustLLRB(err error, op string) {
	if err != nil {
		panic(merry.Prependf(err, "sortedmap %s", op))
	}
}
