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

package bench

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ansel1/merry"
)

// Sink consumes benchmark records as they are produced.
type Sink interface {
	Write(Record) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Record) error

func (f SinkFunc) Write(r Record) error { return f(r) }

// MultiSink writes each record to every sink, stopping at the first error.
func MultiSink(sinks ...Sink) Sink {
	return SinkFunc(func(r Record) error {
		for _, s := range sinks {
			if err := s.Write(r); err != nil {
				return err
			}
		}
		return nil
	})
}

// FormatRecord renders a record as one whitespace separated line:
// the size, then location and spread for each backend, in nanoseconds per
// operation.
func FormatRecord(r Record) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(r.N))
	for _, res := range r.Results {
		fmt.Fprintf(&b, " %.6f %.6f", res.Location, res.Spread)
	}
	return b.String()
}

// TextSink writes one FormatRecord line per record and flushes after each,
// so a partially finished run still leaves usable output behind.
type TextSink struct {
	w *bufio.Writer
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: bufio.NewWriter(w)}
}

// Header writes a comment line naming the columns.
func (t *TextSink) Header(backends []string) error {
	cols := []string{"# n"}
	for _, b := range backends {
		cols = append(cols, b, b+"_spread")
	}
	if _, err := t.w.WriteString(strings.Join(cols, " ") + "\n"); err != nil {
		return merry.Wrap(err)
	}
	return merry.Wrap(t.w.Flush())
}

func (t *TextSink) Write(r Record) error {
	if _, err := t.w.WriteString(FormatRecord(r) + "\n"); err != nil {
		return merry.Wrap(err)
	}
	return merry.Wrap(t.w.Flush())
}
