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
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/patrickmn/go-cache"

	"github.com/cybrota/treebench/tree"
)

// commandHelp is the markdown help for each REPL command.
var commandHelp = map[string]string{
	"insert": "# insert KEY VALUE\nStore VALUE under the integer KEY. Values are at most 14 bytes; quote values with spaces. Inserting an existing key changes nothing.",
	"find":   "# find KEY\nPrint the value stored under KEY, or an empty line when KEY is absent.",
	"remove": "# remove KEY\nDelete KEY. Only the `bst` backend supports deletion; removing an absent key is a no-op.",
	"clear":  "# clear\nDrop every entry.",
	"show":   "# show\nPrint the tree in preorder, with `NULL` for each missing child.\n\n* bst: `key:value`\n* avl: `key:value:height`\n* rbt: `key:value:red|black`",
	"list":   "# list\nPrint the entries in ascending key order as `key:value`.",
	"len":    "# len\nPrint the number of entries.",
	"check":  "# check\nVerify the ordering and balance invariants of the backend.",
	"help":   "# help [COMMAND]\nDescribe one command, or list them all.",
	"exit":   "# exit\nEnd the session.",
}

func replHelpIndex() string {
	names := make([]string, 0, len(commandHelp))
	for name := range commandHelp {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("# Commands\n")
	for _, name := range names {
		title, _, _ := strings.Cut(commandHelp[name], "\n")
		fmt.Fprintf(&b, "* `%s`\n", strings.TrimPrefix(title, "# "))
	}
	b.WriteString("\nType `help COMMAND` for details.\n")
	return b.String()
}

// commandHelpPage renders help for topic; the empty topic is the index.
func commandHelpPage(c *cache.Cache, topic string) (string, bool) {
	if topic == "" {
		return renderHelpPage(c, "index", replHelpIndex()), true
	}
	source, ok := commandHelp[topic]
	if !ok {
		return "", false
	}
	return renderHelpPage(c, topic, source), true
}

func getHelpMessage(c *cache.Cache) string {
	kinds := tree.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = "`" + string(k) + "`"
	}

	message := fmt.Sprintf(`
**treebench %s**

Ordered int to string maps on binary search trees, with a micro-benchmark that
compares how their cost grows with size.

Built with Go %s

# 1. Backends
* bst: unbalanced binary search tree, the only one that supports remove
* avl: height balanced, at most one rotation pair per insert
* rbt: red-black tree with a shared black sentinel
* reference backends: %s
* append `+"`+bloom`"+` to any backend to put a bloom filter in front of lookups

# 2. Interactive session
Run `+"`treebench repl --backend avl`"+` and type commands such as
`+"`insert 5 five`"+`, `+"`find 5`"+`, `+"`show`"+` or `+"`help`"+`.
An unknown command ends the session with exit status 1.

# 3. Benchmark
Run `+"`treebench bench`"+`. Each output line is the workload size followed by
the mean and standard deviation (or median and MAD with
`+"`--estimator median`"+`) of nanoseconds per find-or-insert for each backend.

# 4. Settings
Defaults live in `+"`~/.treebench.yaml`"+`; `+"`treebench settings`"+` prints and
creates it.

# License
Licensed under the Apache License, Version 2.0
Copyright 2025 Naren Yellavula
`, version, runtime.Version(), strings.Join(names, ", "))
	return renderHelpPage(c, "usage", message)
}
