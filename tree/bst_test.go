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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSampleBST(keys ...int) *BST {
	t := NewBST()
	for _, k := range keys {
		t.Insert(k, "v")
	}
	return t
}

func TestBSTDelete(t *testing.T) {
	tests := []struct {
		name      string
		keys      []int
		remove    int
		deleted   bool
		wantOrder []int
		wantShow  string
	}{
		{
			name:      "leaf",
			keys:      []int{50, 30, 70},
			remove:    30,
			deleted:   true,
			wantOrder: []int{50, 70},
			wantShow:  "50:v NULL 70:v NULL NULL",
		},
		{
			name:      "one child",
			keys:      []int{50, 30, 20},
			remove:    30,
			deleted:   true,
			wantOrder: []int{20, 50},
			wantShow:  "50:v 20:v NULL NULL NULL",
		},
		{
			name:      "two children uses successor",
			keys:      []int{50, 30, 70, 60, 80, 65},
			remove:    50,
			deleted:   true,
			wantOrder: []int{30, 60, 65, 70, 80},
			wantShow:  "60:v 30:v NULL NULL 70:v 65:v NULL NULL 80:v NULL NULL",
		},
		{
			name:      "root only",
			keys:      []int{1},
			remove:    1,
			deleted:   true,
			wantOrder: []int{},
			wantShow:  "NULL",
		},
		{
			name:      "absent key",
			keys:      []int{2, 1, 3},
			remove:    9,
			deleted:   false,
			wantOrder: []int{1, 2, 3},
			wantShow:  "2:v 1:v NULL NULL 3:v NULL NULL",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tree := newSampleBST(tc.keys...)
			deleted, err := tree.Delete(tc.remove)
			require.NoError(t, err)
			assert.Equal(t, tc.deleted, deleted)
			assert.Equal(t, tc.wantOrder, Keys(tree))
			assert.Equal(t, tc.wantShow, Show(tree))
			assert.Equal(t, len(tc.wantOrder), tree.Len())
			require.NoError(t, tree.Validate())

			_, found := tree.Find(tc.remove)
			assert.False(t, found)
		})
	}
}

func TestBSTDuplicateInsertIsNoop(t *testing.T) {
	tree := NewBST()
	assert.True(t, tree.Insert(7, "seven"))
	assert.False(t, tree.Insert(7, "SEVEN"))

	v, ok := tree.Find(7)
	assert.True(t, ok)
	assert.Equal(t, "seven", v)
	assert.Equal(t, 1, tree.Len())
}

func TestBSTSortedInputDegenerates(t *testing.T) {
	tree := NewBST()
	for i := 0; i < 500; i++ {
		tree.Insert(i, "v")
	}
	assert.Equal(t, 500, tree.Height())
	require.NoError(t, tree.Validate())
}

func TestBSTShow(t *testing.T) {
	tree := newSampleBST(10, 5, 20)
	assert.Equal(t, "10:v 5:v NULL NULL 20:v NULL NULL", Show(tree))
	assert.Equal(t, "NULL", Show(NewBST()))
}
