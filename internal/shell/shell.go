// Package shell knows how each supported shell sequences statements and
// quotes words.
package shell

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Type names a shell family.
type Type string

const (
	Bash       Type = "bash"
	Zsh        Type = "zsh"
	Fish       Type = "fish"
	PowerShell Type = "powershell"
	Tcsh       Type = "tcsh"
	Posix      Type = "sh"
)

// Shell composes statements using the shell's own syntax. Rules that build
// multi-statement corrections depend only on this interface.
type Shell interface {
	// Name returns the shell family.
	Name() Type
	// And joins statements so each runs only if the previous one succeeded.
	And(statements ...string) string
	// Or joins statements so each runs only if the previous one failed.
	Or(statements ...string) string
	// Quote makes s safe to embed as a single word.
	Quote(s string) string
	// Binary is the executable used to run a script, e.g. "bash".
	Binary() string
}

// Sequence joins statements with sh's "and" operator so each runs only after
// the previous one succeeded. It panics when sh is nil.
func Sequence(sh Shell, statements ...string) string {
	return Must(sh).And(statements...)
}

// Must returns sh, panicking when it is nil. A nil shell handed to a rule
// that sequences statements is a programming error.
func Must(sh Shell) Shell {
	if sh == nil {
		panic("shell: no shell supplied to a rule that composes statements")
	}
	return sh
}

// posix covers bash, zsh, sh and tcsh, which all share && / || and
// single-quote escaping.
type posix struct {
	typ    Type
	binary string
}

func (p posix) Name() Type     { return p.typ }
func (p posix) Binary() string { return p.binary }

func (p posix) And(statements ...string) string {
	return strings.Join(statements, " && ")
}

func (p posix) Or(statements ...string) string {
	return strings.Join(statements, " || ")
}

func (p posix) Quote(s string) string {
	return shellquote.Join(s)
}

type fish struct{}

func (fish) Name() Type     { return Fish }
func (fish) Binary() string { return "fish" }

func (fish) And(statements ...string) string {
	return strings.Join(statements, "; and ")
}

func (fish) Or(statements ...string) string {
	return strings.Join(statements, "; or ")
}

// Quote uses fish single quotes, where only \ and ' need escaping.
func (fish) Quote(s string) string {
	if s != "" && shellquote.Join(s) == s {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}

type powerShell struct{}

func (powerShell) Name() Type     { return PowerShell }
func (powerShell) Binary() string { return "pwsh" }

func (powerShell) And(statements ...string) string {
	return "(" + strings.Join(statements, ") -and (") + ")"
}

func (powerShell) Or(statements ...string) string {
	return "(" + strings.Join(statements, ") -or (") + ")"
}

// Quote doubles embedded single quotes inside a single-quoted literal.
func (powerShell) Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// New returns the Shell for the given family. Unknown families get POSIX sh.
func New(t Type) Shell {
	switch t {
	case Bash:
		return posix{typ: Bash, binary: "bash"}
	case Zsh:
		return posix{typ: Zsh, binary: "zsh"}
	case Tcsh:
		return posix{typ: Tcsh, binary: "tcsh"}
	case Fish:
		return fish{}
	case PowerShell:
		return powerShell{}
	default:
		return posix{typ: Posix, binary: "sh"}
	}
}

// FromName maps an executable name or path ("/usr/bin/zsh", "pwsh") to a
// Shell. An empty name detects the current shell.
func FromName(name string) Shell {
	if name == "" {
		return Detect()
	}
	return New(typeOf(filepath.Base(name)))
}

// Detect inspects the environment for the user's shell.
func Detect() Shell {
	sh := os.Getenv("SHELL")
	if sh == "" {
		if runtime.GOOS == "windows" {
			return New(PowerShell)
		}
		return New(Bash)
	}
	return New(typeOf(filepath.Base(sh)))
}

func typeOf(base string) Type {
	base = strings.TrimSuffix(strings.ToLower(base), ".exe")
	switch base {
	case "bash":
		return Bash
	case "zsh":
		return Zsh
	case "fish":
		return Fish
	case "pwsh", "powershell":
		return PowerShell
	case "tcsh", "csh":
		return Tcsh
	default:
		return Posix
	}
}
