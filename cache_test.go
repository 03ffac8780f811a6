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
	"strings"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
)

func TestCacheHelpPageAndGetHelpPage(t *testing.T) {
	c := NewHelpCache()
	topic := "insert"
	page := "rendered insert help"

	// A missing topic reads as the empty string.
	if got := GetHelpPage(c, topic); got != "" {
		t.Errorf("GetHelpPage(%q) = %q; want empty string", topic, got)
	}

	CacheHelpPage(c, topic, page)

	if got := GetHelpPage(c, topic); got != page {
		t.Errorf("GetHelpPage(%q) = %q; want %q", topic, got, page)
	}
}

func TestCacheExpiration(t *testing.T) {
	c := cache.New(100*time.Millisecond, 50*time.Millisecond)
	topic := "show"

	CacheHelpPage(c, topic, "short lived")
	if got := GetHelpPage(c, topic); got != "short lived" {
		t.Errorf("GetHelpPage(%q) = %q; want %q", topic, got, "short lived")
	}

	time.Sleep(150 * time.Millisecond)

	if got := GetHelpPage(c, topic); got != "" {
		t.Errorf("After expiration, GetHelpPage(%q) = %q; want empty string", topic, got)
	}
}

func TestRenderHelpPageUsesCache(t *testing.T) {
	c := NewHelpCache()
	first := renderHelpPage(c, "find", "# find KEY\nlook a key up")
	if !strings.Contains(first, "look a key up") {
		t.Fatalf("rendered page %q does not contain the body", first)
	}

	// A cached topic ignores the new source.
	if got := renderHelpPage(c, "find", "# something else"); got != first {
		t.Errorf("renderHelpPage returned %q; want cached %q", got, first)
	}
}

func TestCommandHelpCoversEveryCommand(t *testing.T) {
	for name := range commands {
		if _, ok := commandHelp[name]; !ok {
			t.Errorf("command %q has no help page", name)
		}
	}
	for name := range commandHelp {
		if _, ok := commands[name]; !ok {
			t.Errorf("help page %q has no command", name)
		}
	}
}
