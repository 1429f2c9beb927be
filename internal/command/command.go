// Package command holds the failed invocation a correction request is about.
package command

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Command is one failed invocation: the script as typed, its shell-lexed
// tokens and, when it was captured, the combined stdout+stderr.
//
// A Command is never mutated after construction. Wrappers that need a
// different view of it (for example without a leading "sudo ") derive a new
// value with WithOverrides.
type Command struct {
	script    string
	tokens    []string
	output    string
	hasOutput bool
	exitCode  int
	hasExit   bool
}

// Overrides lists the fields a derived Command replaces. Nil fields keep the
// receiver's value.
type Overrides struct {
	Script *string
	Output *string
}

// New builds a Command with captured output.
func New(script, output string) *Command {
	return &Command{
		script:    script,
		tokens:    Split(script),
		output:    output,
		hasOutput: true,
	}
}

// NewWithoutOutput builds a Command for which only the script is known.
func NewWithoutOutput(script string) *Command {
	return &Command{
		script: script,
		tokens: Split(script),
	}
}

// Split lexes script the way a POSIX shell splits words. Unbalanced quotes
// fall back to plain whitespace splitting.
func Split(script string) []string {
	tokens, err := shellquote.Split(script)
	if err != nil {
		return strings.Fields(script)
	}
	return tokens
}

// Script returns the raw text as the user typed it.
func (c *Command) Script() string {
	return c.script
}

// Tokens returns a copy of the lexed words.
func (c *Command) Tokens() []string {
	out := make([]string, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// Token returns the i-th token, or "" when out of range.
func (c *Command) Token(i int) string {
	if i < 0 || i >= len(c.tokens) {
		return ""
	}
	return c.tokens[i]
}

// Len returns the number of tokens.
func (c *Command) Len() int {
	return len(c.tokens)
}

// Output returns the captured output and whether any was captured.
func (c *Command) Output() (string, bool) {
	return c.output, c.hasOutput
}

// HasOutput reports whether output was captured.
func (c *Command) HasOutput() bool {
	return c.hasOutput
}

// ExitCode returns the exit status when the capture layer supplied one.
func (c *Command) ExitCode() (int, bool) {
	return c.exitCode, c.hasExit
}

// WithExitCode returns a copy carrying the given exit status.
func (c *Command) WithExitCode(code int) *Command {
	derived := *c
	derived.exitCode = code
	derived.hasExit = true
	return &derived
}

// WithOverrides returns a derived Command. The script is re-tokenized only
// when it changes; the receiver is left untouched.
func (c *Command) WithOverrides(o Overrides) *Command {
	derived := *c
	if o.Script != nil && *o.Script != c.script {
		derived.script = *o.Script
		derived.tokens = Split(*o.Script)
	}
	if o.Output != nil {
		derived.output = *o.Output
		derived.hasOutput = true
	}
	return &derived
}

// WithScript is shorthand for WithOverrides with only the script replaced.
func (c *Command) WithScript(script string) *Command {
	return c.WithOverrides(Overrides{Script: &script})
}

// String returns the script.
func (c *Command) String() string {
	return c.script
}
