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
	"math/rand"
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type AVLTestCase struct {
	Name          string
	KeysToInsert  []int
	ExpectedRoot  int
	ExpectedOrder []int // In-order traversal expectation after operations
	Rotations     uint64
}

func TestAVLTreeOperations(t *testing.T) {
	testCases := []AVLTestCase{
		{
			Name:          "Simple Insertion",
			KeysToInsert:  []int{20, 10, 30},
			ExpectedRoot:  20,
			ExpectedOrder: []int{10, 20, 30},
			Rotations:     0,
		},
		{
			Name:          "Right-Right",
			KeysToInsert:  []int{10, 20, 30},
			ExpectedRoot:  20,
			ExpectedOrder: []int{10, 20, 30},
			Rotations:     1,
		},
		{
			Name:          "Left-Left",
			KeysToInsert:  []int{30, 20, 10},
			ExpectedRoot:  20,
			ExpectedOrder: []int{10, 20, 30},
			Rotations:     1,
		},
		{
			Name:          "Left-Right",
			KeysToInsert:  []int{30, 10, 20},
			ExpectedRoot:  20,
			ExpectedOrder: []int{10, 20, 30},
			Rotations:     2,
		},
		{
			Name:          "Right-Left",
			KeysToInsert:  []int{10, 30, 20},
			ExpectedRoot:  20,
			ExpectedOrder: []int{10, 20, 30},
			Rotations:     2,
		},
		{
			Name:          "Duplicates Ignored",
			KeysToInsert:  []int{5, 5, 3, 3, 8},
			ExpectedRoot:  5,
			ExpectedOrder: []int{3, 5, 8},
			Rotations:     0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tree := NewAVLTree()
			for _, key := range tc.KeysToInsert {
				tree.Insert(key, "v")
				require.NoError(t, tree.Validate())
			}
			require.NotNil(t, tree.Root)
			assert.Equal(t, tc.ExpectedRoot, tree.Root.Key)
			assert.Equal(t, tc.ExpectedOrder, Keys(tree))
			assert.Equal(t, tc.Rotations, tree.Rotations())
		})
	}
}

func TestAVLRightRightShape(t *testing.T) {
	tree := NewAVLTree()
	tree.Insert(10, "a")
	tree.Insert(20, "b")
	tree.Insert(30, "c")

	require.Equal(t, 20, tree.Root.Key)
	require.NotNil(t, tree.Root.Left)
	require.NotNil(t, tree.Root.Right)
	assert.Equal(t, 10, tree.Root.Left.Key)
	assert.Equal(t, 30, tree.Root.Right.Key)
	assert.Equal(t, 2, tree.Root.Height)
	assert.Equal(t, "20:b:2 10:a:1 NULL NULL 30:c:1 NULL NULL", Show(tree))
}

func TestAVLInvariantAfterEveryInsert(t *testing.T) {
	orders := map[string]func(i int, rng *rand.Rand) int{
		"ascending":  func(i int, _ *rand.Rand) int { return i },
		"descending": func(i int, _ *rand.Rand) int { return -i },
		"zigzag": func(i int, _ *rand.Rand) int {
			if i%2 == 0 {
				return i
			}
			return -i
		},
		"random": func(_ int, rng *rand.Rand) int { return rng.Intn(5000) },
	}

	for name, next := range orders {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(7))
			tree := NewAVLTree()
			for i := 0; i < 2000; i++ {
				before := tree.Rotations()
				tree.Insert(next(i, rng), "v")
				require.NoError(t, tree.Validate(), "after insert #%d", i)
				// one rebalancing event: a single or a double rotation
				require.LessOrEqual(t, tree.Rotations()-before, uint64(2))
			}
		})
	}
}

func TestAVLHeightIsLogarithmic(t *testing.T) {
	tree := NewAVLTree()
	for i := 0; i < 1<<12; i++ {
		tree.Insert(i, "v")
	}
	// 1.44 * log2(n) bound for AVL trees
	assert.LessOrEqual(t, tree.Height(), 18)
	assert.Equal(t, 1<<12, tree.Len())
}

func TestAVLDuplicateKeepsValue(t *testing.T) {
	tree := NewAVLTree()
	assert.True(t, tree.Insert(1, "first"))
	assert.False(t, tree.Insert(1, "second"))

	v, ok := tree.Find(1)
	assert.True(t, ok)
	assert.Equal(t, "first", v)
	assert.Equal(t, 1, tree.Len())
}

func TestAVLDeleteUnsupported(t *testing.T) {
	tree := NewAVLTree()
	tree.Insert(1, "a")
	ok, err := tree.Delete(1)
	assert.False(t, ok)
	assert.True(t, merry.Is(err, ErrDeleteUnsupported))

	_, found := tree.Find(1)
	assert.True(t, found)
}

func TestAVLValidateDetectsBadHeight(t *testing.T) {
	tree := NewAVLTree()
	tree.Insert(2, "b")
	tree.Insert(1, "a")
	tree.Root.Height = 5

	err := tree.Validate()
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrInvariant))
	key, ok := ViolationKey(err)
	assert.True(t, ok)
	assert.Equal(t, 2, key)
}
