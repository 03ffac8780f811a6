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

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ansel1/merry"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/treebench/tree"
)

func runSession(t *testing.T, backend, input string) (string, error) {
	t.Helper()
	m, err := tree.New(backend, tree.Options{})
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()

	var out bytes.Buffer
	repl := NewREPL(m, &out, NewHelpCache(), logrus.NewEntry(logger))
	err = repl.Run(strings.NewReader(input))
	return out.String(), err
}

func TestREPLTranscripts(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		input   string
		want    string
	}{
		{
			name:    "bst find show remove",
			backend: "bst",
			input: `insert 5 five
insert 3 three
insert 8 eight
find 3
find 4
show
remove 5
show
list
len
exit
find 3
`,
			want: "three\n" +
				"\n" +
				"5:five 3:three NULL NULL 8:eight NULL NULL\n" +
				"8:eight 3:three NULL NULL NULL\n" +
				"3:three 8:eight\n" +
				"2\n",
		},
		{
			name:    "avl rebalances and refuses remove",
			backend: "avl",
			input: `insert 1 a
insert 2 b
insert 3 c
show
remove 1
len
check
`,
			want: "2:b:2 1:a:1 NULL NULL 3:c:1 NULL NULL\n" +
				"remove is not supported by the avl backend\n" +
				"3\n" +
				"ok\n",
		},
		{
			name:    "rbt colors",
			backend: "rbt",
			input:   "insert 10 v\ninsert 20 v\ninsert 30 v\nshow\nclear\nshow\n",
			want:    "20:v:black 10:v:red NULL NULL 30:v:red NULL NULL\nNULL\n",
		},
		{
			name:    "duplicate insert keeps first value",
			backend: "bst",
			input:   "insert 7 first\ninsert 7 second\nfind 7\nlen\n",
			want:    "first\n1\n",
		},
		{
			name:    "blank lines are ignored",
			backend: "rbt",
			input:   "\n   \ninsert 1 x\n\nlen\n",
			want:    "1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runSession(t, tt.backend, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestREPLUnknownCommandStops(t *testing.T) {
	out, err := runSession(t, "bst", "insert 1 a\nfrobnicate 3\nlen\n")
	require.Error(t, err)
	assert.True(t, merry.Is(err, errUnknownCommand))
	assert.Equal(t, "frobnicate", merry.Value(err, "command"))
	assert.Equal(t, "Error! operator is not correct: \"frobnicate\"\n", out)
}

func TestREPLBadArgumentsContinue(t *testing.T) {
	input := strings.Join([]string{
		"insert x a",
		"insert 1",
		"insert 1 abcdefghijklmnop",
		"find",
		`insert 1 "unterminated`,
		`insert 2 "hello world"`,
		"find 2",
		"len",
	}, "\n")

	out, err := runSession(t, "avl", input)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, `key must be an integer, got "x"`, lines[0])
	assert.Equal(t, "usage: insert KEY VALUE", lines[1])
	assert.Equal(t, `value "abcdefghijklmnop" is longer than 14 bytes`, lines[2])
	assert.Equal(t, "usage: find KEY", lines[3])
	assert.Contains(t, lines[4], "cannot parse")
	assert.Equal(t, "hello world", lines[5])
	assert.Equal(t, "1", lines[6])
}

func TestREPLValueLengthLimit(t *testing.T) {
	out, err := runSession(t, "bst", "insert 1 abcdefghijklmn\nfind 1\n")
	require.NoError(t, err)
	assert.Equal(t, "abcdefghijklmn\n", out)
}

func TestREPLListStylesKeys(t *testing.T) {
	m, err := tree.New("avl", tree.Options{})
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()

	var out bytes.Buffer
	repl := NewREPL(m, &out, NewHelpCache(), logrus.NewEntry(logger))
	repl.styles.Key = lipgloss.NewStyle().Transform(func(s string) string { return "<" + s + ">" })

	require.NoError(t, repl.Run(strings.NewReader("insert 8 eight\ninsert 3 three\nlist\n")))
	assert.Equal(t, "<3>:three <8>:eight\n", out.String())
}

func TestREPLBloomBackend(t *testing.T) {
	out, err := runSession(t, "rbt+bloom", "insert 4 four\nfind 4\nfind 5\nshow\n")
	require.NoError(t, err)
	assert.Equal(t, "four\n\n4:four:black NULL NULL\n", out)
}

func TestREPLHelp(t *testing.T) {
	out, err := runSession(t, "bst", "help find\n")
	require.NoError(t, err)
	assert.Contains(t, out, "an empty line")

	out, err = runSession(t, "bst", "help\n")
	require.NoError(t, err)
	assert.Contains(t, out, "remove")

	out, err = runSession(t, "bst", "help nope\nlen\n")
	require.NoError(t, err)
	assert.Equal(t, "no help for \"nope\"\n0\n", out)
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"insert 1 one", []string{"insert", "1", "one"}},
		{`insert 2 "two words"`, []string{"insert", "2", "two words"}},
		{"  find   3 ", []string{"find", "3"}},
		{"", []string{}},
	}

	for _, tc := range tests {
		parts, err := splitCommand(tc.input)
		require.NoError(t, err, tc.input)
		assert.ElementsMatch(t, tc.expected, parts, tc.input)
	}
}
