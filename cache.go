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
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/patrickmn/go-cache"
)

const (
	helpCacheExpiration = 30 * time.Minute
	helpCacheCleanup    = 5 * time.Minute

	helpWidth  = 80
	helpIndent = 2
)

// NewHelpCache holds rendered help pages keyed by topic.
func NewHelpCache() *cache.Cache {
	return cache.New(helpCacheExpiration, helpCacheCleanup)
}

func CacheHelpPage(c *cache.Cache, topic string, page string) {
	c.Set(topic, page, cache.DefaultExpiration)
}

func GetHelpPage(c *cache.Cache, topic string) string {
	val, ok := c.Get(topic)
	if !ok {
		return ""
	}
	return val.(string)
}

// renderHelpPage returns the terminal rendering of a markdown page, from the
// cache when it was rendered before.
func renderHelpPage(c *cache.Cache, topic, source string) string {
	if page := GetHelpPage(c, topic); page != "" {
		return page
	}
	page := string(markdown.Render(source, helpWidth, helpIndent))
	CacheHelpPage(c, topic, page)
	return page
}
