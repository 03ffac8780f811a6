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
	"fmt"
	"math/rand"
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allBackends = []string{"bst", "avl", "rbt", "btree", "llrb", "avl+bloom", "rbt+bloom"}

func newBackend(t *testing.T, name string) Map {
	t.Helper()
	m, err := New(name, Options{BTreeDegree: 4, BloomEstimate: 4096})
	require.NoError(t, err)
	return m
}

func TestFindAfterInserts(t *testing.T) {
	for _, name := range allBackends {
		t.Run(name, func(t *testing.T) {
			m := newBackend(t, name)
			rng := rand.New(rand.NewSource(3))
			want := map[int]string{}
			for i := 0; i < 1000; i++ {
				k := rng.Intn(100000)
				if _, seen := want[k]; seen {
					continue
				}
				v := fmt.Sprintf("v%d", k)
				want[k] = v
				require.True(t, m.Insert(k, v))
			}

			assert.Equal(t, len(want), m.Len())
			for k, v := range want {
				got, ok := m.Find(k)
				require.True(t, ok, "key %d", k)
				require.Equal(t, v, got)
			}
			for _, k := range []int{-1, 100000, 100001} {
				_, ok := m.Find(k)
				assert.False(t, ok, "key %d", k)
			}
			require.NoError(t, Validate(m))
		})
	}
}

func TestAscendStrictlyIncreasing(t *testing.T) {
	for _, name := range allBackends {
		t.Run(name, func(t *testing.T) {
			m := newBackend(t, name)
			rng := rand.New(rand.NewSource(5))
			for i := 0; i < 500; i++ {
				m.Insert(rng.Intn(300)-150, "v")
			}
			keys := Keys(m)
			require.Equal(t, m.Len(), len(keys))
			for i := 1; i < len(keys); i++ {
				require.Less(t, keys[i-1], keys[i])
			}
		})
	}
}

func TestClearBehavesLikeNewMap(t *testing.T) {
	for _, name := range allBackends {
		t.Run(name, func(t *testing.T) {
			m := newBackend(t, name)
			for i := 0; i < 100; i++ {
				m.Insert(i, "old")
			}
			m.Clear()

			assert.Equal(t, 0, m.Len())
			for i := 0; i < 100; i++ {
				_, ok := m.Find(i)
				require.False(t, ok)
			}

			fresh := newBackend(t, name)
			for _, k := range []int{10, 20, 30, 5} {
				assert.Equal(t, fresh.Insert(k, "new"), m.Insert(k, "new"))
			}
			assert.Equal(t, Show(fresh), Show(m))
			assert.Equal(t, Keys(fresh), Keys(m))
		})
	}
}

func TestPreorderIsRestartable(t *testing.T) {
	for _, name := range []string{"bst", "avl", "rbt"} {
		t.Run(name, func(t *testing.T) {
			m := newBackend(t, name)
			for _, k := range []int{4, 2, 6, 1, 3, 5, 7} {
				m.Insert(k, "v")
			}
			seq := m.Preorder()

			var first, second []int
			for e := range seq {
				first = append(first, e.Key)
				if len(first) == 3 {
					break
				}
			}
			for e := range seq {
				second = append(second, e.Key)
			}
			assert.Equal(t, []int{4, 2, 1}, first)
			assert.Equal(t, []int{4, 2, 1, 3, 6, 5, 7}, second)
		})
	}
}

func TestPreorderCarriesNodeDetails(t *testing.T) {
	avl := newBackend(t, "avl")
	rbt := newBackend(t, "rbt")
	for _, k := range []int{10, 20, 30} {
		avl.Insert(k, "v")
		rbt.Insert(k, "v")
	}

	var heights []int
	for e := range avl.Preorder() {
		heights = append(heights, e.Height)
	}
	assert.Equal(t, []int{2, 1, 1}, heights)

	var colors []Color
	for e := range rbt.Preorder() {
		colors = append(colors, e.Color)
	}
	assert.Equal(t, []Color{Black, Red, Red}, colors)
}

func TestDeleteSupport(t *testing.T) {
	tests := []struct {
		name      string
		supported bool
	}{
		{"bst", true},
		{"btree", true},
		{"llrb", true},
		{"avl", false},
		{"rbt", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newBackend(t, tc.name)
			m.Insert(1, "a")
			m.Insert(2, "b")

			ok, err := m.Delete(1)
			if !tc.supported {
				assert.True(t, merry.Is(err, ErrDeleteUnsupported))
				assert.Equal(t, 2, m.Len())
				return
			}
			require.NoError(t, err)
			assert.True(t, ok)
			ok, err = m.Delete(1)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, []int{2}, Keys(m))
		})
	}
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New("splay", Options{})
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrUnknownBackend))
	assert.Contains(t, merry.UserMessage(err), "splay")
	assert.Equal(t, "splay", merry.Value(err, "backend"))
}

func TestKindsAndHeights(t *testing.T) {
	assert.Equal(t, []Kind{KindAVL, KindBTree, KindBST, KindLLRB, KindRBT}, Kinds())

	m := newBackend(t, "avl+bloom")
	assert.Equal(t, Kind("avl+bloom"), m.Kind())
	assert.Equal(t, 0, Height(m))
	assert.Equal(t, -1, Height(newBackend(t, "btree")))
}

func TestRegisterAddsBackend(t *testing.T) {
	const kind Kind = "wide-btree"
	Register(kind, func(opts Options) Map { return NewBTree(opts.BTreeDegree * 4) })
	defer delete(registry, kind)

	assert.Contains(t, Kinds(), kind)

	m, err := New(" Wide-BTree+bloom ", Options{BTreeDegree: 2})
	require.NoError(t, err)
	assert.Equal(t, Kind("btree+bloom"), m.Kind())
	assert.Equal(t, 8, m.(*Filtered).Unwrap().(*BTree).degree)
	require.True(t, m.Insert(1, "one"))
	v, ok := m.Find(1)
	require.True(t, ok)
	assert.Equal(t, "one", v)
}

func TestFilteredSkipsDefiniteMisses(t *testing.T) {
	inner := NewRBTree()
	f := NewFiltered(inner, 1024, 0.001)
	for i := 0; i < 100; i++ {
		f.Insert(i, "v")
	}
	for i := 1000; i < 2000; i++ {
		_, ok := f.Find(i)
		require.False(t, ok)
	}
	assert.Greater(t, f.Skipped(), uint64(900))
	assert.Equal(t, Show(inner), Show(f))

	f.Clear()
	_, ok := f.Find(1)
	assert.False(t, ok)
	assert.Equal(t, 0, inner.Len())
}
