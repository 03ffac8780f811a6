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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ansel1/merry"
	"github.com/mattn/go-shellwords"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/cybrota/treebench/tree"
)

// maxValueLen is the longest value insert accepts, in bytes.
const maxValueLen = 14

var (
	errUnknownCommand = merry.New("unknown command")
	errBadArgument    = merry.New("bad argument")
)

type commandFunc func(r *REPL, args []string) (stop bool, err error)

var commands map[string]commandFunc

func init() {
	commands = map[string]commandFunc{
		"insert": (*REPL).insert,
		"find":   (*REPL).find,
		"remove": (*REPL).remove,
		"clear":  (*REPL).clear,
		"show":   (*REPL).show,
		"list":   (*REPL).list,
		"len":    (*REPL).length,
		"check":  (*REPL).check,
		"help":   (*REPL).help,
		"exit":   func(*REPL, []string) (bool, error) { return true, nil },
	}
}

// REPL runs line commands against one map.
type REPL struct {
	m      tree.Map
	out    io.Writer
	styles Styles
	pages  *cache.Cache
	prompt string
	log    *logrus.Entry
}

func NewREPL(m tree.Map, out io.Writer, helpCache *cache.Cache, log *logrus.Entry) *REPL {
	return &REPL{
		m:      m,
		out:    out,
		styles: NewStyles(out),
		pages:  helpCache,
		log:    log,
	}
}

// SetPrompt sets the text printed before reading each line.
func (r *REPL) SetPrompt(prompt string) {
	r.prompt = prompt
}

// Run reads commands from in until exit, end of input, or an unknown
// command. Only the last is returned as an error; other command errors are
// printed and the session continues.
func (r *REPL) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if r.prompt != "" {
			fmt.Fprint(r.out, r.styles.Prompt.Render(r.prompt))
		}
		if !scanner.Scan() {
			break
		}

		stop, err := r.Execute(scanner.Text())
		if err != nil {
			r.printError(err)
			if merry.Is(err, errUnknownCommand) {
				return err
			}
			continue
		}
		if stop {
			return nil
		}
	}
	return merry.Wrap(scanner.Err())
}

// Execute runs one command line. Blank lines do nothing.
func (r *REPL) Execute(line string) (stop bool, err error) {
	args, err := splitCommand(line)
	if err != nil {
		return false, merry.WithUserMessagef(errBadArgument, "cannot parse %q: %v", line, err)
	}
	if len(args) == 0 {
		return false, nil
	}

	name := strings.ToLower(args[0])
	cmd, ok := commands[name]
	if !ok {
		return false, merry.WithUserMessagef(merry.WithValue(errUnknownCommand, "command", name), "Error! operator is not correct: %q", args[0])
	}
	r.log.WithFields(logrus.Fields{"command": name, "args": args[1:]}).Debug("repl command")
	return cmd(r, args[1:])
}

func (r *REPL) printError(err error) {
	msg := merry.UserMessage(err)
	if msg == "" {
		msg = err.Error()
	}
	fmt.Fprintln(r.out, r.styles.Error.Render(msg))
}

// splitCommand tokenizes a command line with shell quoting rules.
func splitCommand(line string) ([]string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, err
	}
	return args, nil
}

func wantArgs(cmd string, args []string, n int, usage string) error {
	if len(args) != n {
		return merry.WithUserMessagef(errBadArgument, "usage: %s %s", cmd, usage)
	}
	return nil
}

func parseKey(s string) (int, error) {
	key, err := strconv.Atoi(s)
	if err != nil {
		return 0, merry.WithUserMessagef(merry.WithValue(errBadArgument, "key", s), "key must be an integer, got %q", s)
	}
	return key, nil
}

func (r *REPL) insert(args []string) (bool, error) {
	if err := wantArgs("insert", args, 2, "KEY VALUE"); err != nil {
		return false, err
	}
	key, err := parseKey(args[0])
	if err != nil {
		return false, err
	}
	if len(args[1]) > maxValueLen {
		return false, merry.WithUserMessagef(errBadArgument, "value %q is longer than %d bytes", args[1], maxValueLen)
	}
	r.m.Insert(key, args[1])
	return false, nil
}

func (r *REPL) find(args []string) (bool, error) {
	if err := wantArgs("find", args, 1, "KEY"); err != nil {
		return false, err
	}
	key, err := parseKey(args[0])
	if err != nil {
		return false, err
	}
	value, _ := r.m.Find(key)
	fmt.Fprintln(r.out, value)
	return false, nil
}

func (r *REPL) remove(args []string) (bool, error) {
	if err := wantArgs("remove", args, 1, "KEY"); err != nil {
		return false, err
	}
	key, err := parseKey(args[0])
	if err != nil {
		return false, err
	}
	if _, err := r.m.Delete(key); err != nil {
		if merry.Is(err, tree.ErrDeleteUnsupported) {
			return false, merry.WithUserMessagef(err, "remove is not supported by the %s backend", r.m.Kind())
		}
		return false, err
	}
	return false, nil
}

func (r *REPL) clear(args []string) (bool, error) {
	if err := wantArgs("clear", args, 0, ""); err != nil {
		return false, err
	}
	r.m.Clear()
	return false, nil
}

func (r *REPL) show(args []string) (bool, error) {
	if err := wantArgs("show", args, 0, ""); err != nil {
		return false, err
	}
	fmt.Fprintln(r.out, tree.Show(r.m))
	return false, nil
}

func (r *REPL) list(args []string) (bool, error) {
	if err := wantArgs("list", args, 0, ""); err != nil {
		return false, err
	}
	var b strings.Builder
	for e := range r.m.Ascend() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.styles.Key.Render(strconv.Itoa(e.Key)))
		b.WriteByte(':')
		b.WriteString(e.Value)
	}
	fmt.Fprintln(r.out, b.String())
	return false, nil
}

func (r *REPL) length(args []string) (bool, error) {
	if err := wantArgs("len", args, 0, ""); err != nil {
		return false, err
	}
	fmt.Fprintln(r.out, r.m.Len())
	return false, nil
}

func (r *REPL) check(args []string) (bool, error) {
	if err := wantArgs("check", args, 0, ""); err != nil {
		return false, err
	}
	if err := tree.Validate(r.m); err != nil {
		msg := err.Error()
		if key, ok := tree.ViolationKey(err); ok {
			msg = fmt.Sprintf("%s (at key %d)", msg, key)
		}
		fmt.Fprintln(r.out, r.styles.Warning.Render(msg))
		return false, nil
	}
	fmt.Fprintln(r.out, r.styles.Success.Render("ok"))
	return false, nil
}

func (r *REPL) help(args []string) (bool, error) {
	topic := ""
	if len(args) > 0 {
		topic = strings.ToLower(args[0])
	}
	page, ok := commandHelpPage(r.pages, topic)
	if !ok {
		return false, merry.WithUserMessagef(errBadArgument, "no help for %q", topic)
	}
	fmt.Fprint(r.out, page)
	return false, nil
}
