package rule

import (
	"fmt"
	"sort"
	"strings"
)

// ActionKind tags what a side-effect does.
type ActionKind string

const (
	// NoAction is the zero kind.
	NoAction ActionKind = ""
	// RemoveLines deletes 1-based line numbers from a file.
	// Args: "path", "lines" (comma separated).
	RemoveLines ActionKind = "remove_lines"
)

// Action is an inert description of a side-effect to run after a user picks
// a suggestion. The pipeline only carries it; a separate executor runs it.
type Action struct {
	Kind ActionKind        `json:"kind,omitempty" yaml:"kind,omitempty"`
	Args map[string]string `json:"args,omitempty" yaml:"args,omitempty"`
	// Then runs, in order, after this action succeeds.
	Then []Action `json:"then,omitempty" yaml:"then,omitempty"`
}

// IsZero reports whether the action does nothing.
func (a Action) IsZero() bool {
	return a.Kind == NoAction
}

// String renders the action for logs, with args in key order.
func (a Action) String() string {
	if a.IsZero() {
		return "none"
	}
	keys := make([]string, 0, len(a.Args))
	for k := range a.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, a.Args[k]))
	}
	out := fmt.Sprintf("%s(%s)", a.Kind, strings.Join(parts, ", "))
	for _, next := range a.Then {
		out += " then " + next.String()
	}
	return out
}

// CorrectedCommand is one suggestion.
type CorrectedCommand struct {
	Script   string `json:"script" yaml:"script"`
	Priority int    `json:"priority" yaml:"priority"`
	Rule     string `json:"rule" yaml:"rule"`
	Action   Action `json:"action,omitempty" yaml:"action,omitempty"`
}

// SameScript reports whether two suggestions are duplicates. Only the exact
// script text counts.
func (c CorrectedCommand) SameScript(other CorrectedCommand) bool {
	return c.Script == other.Script
}

// String returns the script.
func (c CorrectedCommand) String() string {
	return c.Script
}
