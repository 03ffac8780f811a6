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
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type ColorScheme struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color
}

type TerminalMode int

const (
	TerminalModeUnknown TerminalMode = iota
	TerminalModeLight
	TerminalModeDark
)

// detectTerminalMode attempts to detect whether the terminal is in light or dark mode
func detectTerminalMode() TerminalMode {
	// COLORFGBG is "foreground;background"; low background numbers are dark
	if colorScheme := os.Getenv("COLORFGBG"); colorScheme != "" {
		parts := strings.Split(colorScheme, ";")
		if len(parts) >= 2 {
			switch parts[len(parts)-1] {
			case "0", "8", "16":
				return TerminalModeDark
			case "7", "15", "255":
				return TerminalModeLight
			}
		}
	}

	for _, env := range []string{"TERM_THEME", "THEME"} {
		theme := strings.ToLower(os.Getenv(env))
		if strings.Contains(theme, "dark") {
			return TerminalModeDark
		} else if strings.Contains(theme, "light") {
			return TerminalModeLight
		}
	}

	return TerminalModeDark
}

func createLightColorScheme() *ColorScheme {
	return &ColorScheme{
		Primary: lipgloss.Color("4"),
		Accent:  lipgloss.Color("5"),
		Success: lipgloss.Color("2"),
		Warning: lipgloss.Color("3"),
		Error:   lipgloss.Color("1"),
		Muted:   lipgloss.Color("240"),
	}
}

func createDarkColorScheme() *ColorScheme {
	return &ColorScheme{
		Primary: lipgloss.Color("39"),
		Accent:  lipgloss.Color("205"),
		Success: lipgloss.Color("10"),
		Warning: lipgloss.Color("11"),
		Error:   lipgloss.Color("9"),
		Muted:   lipgloss.Color("245"),
	}
}

func colorSchemeFor(mode TerminalMode) *ColorScheme {
	if mode == TerminalModeLight {
		return createLightColorScheme()
	}
	return createDarkColorScheme()
}

// Styles are bound to one output. Writers that are not terminals get plain
// text.
type Styles struct {
	Prompt  lipgloss.Style
	Title   lipgloss.Style
	Key     lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	scheme := colorSchemeFor(detectTerminalMode())
	return Styles{
		Prompt:  r.NewStyle().Foreground(scheme.Accent).Bold(true),
		Title:   r.NewStyle().Foreground(scheme.Primary).Bold(true),
		Key:     r.NewStyle().Foreground(scheme.Primary),
		Success: r.NewStyle().Foreground(scheme.Success),
		Warning: r.NewStyle().Foreground(scheme.Warning),
		Error:   r.NewStyle().Foreground(scheme.Error).Bold(true),
		Muted:   r.NewStyle().Foreground(scheme.Muted),
	}
}
