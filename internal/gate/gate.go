// Package gate wraps narrow rule predicates and generators so they only see
// commands they were written for.
package gate

import (
	"slices"
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// AppName returns the base name of the command's executable, with any
// leading directory stripped.
func AppName(cmd *command.Command) string {
	first := strings.TrimRight(cmd.Token(0), `/\`)
	if i := strings.LastIndexAny(first, `/\`); i >= 0 {
		first = first[i+1:]
	}
	return first
}

// IsApp reports whether the command runs one of names and its token count
// exceeds minArgs, i.e. the executable plus at least minArgs arguments.
func IsApp(cmd *command.Command, names []string, minArgs int) bool {
	if cmd == nil || cmd.Len() <= minArgs {
		return false
	}
	return slices.Contains(names, AppName(cmd))
}

// Gate evaluates pred only when IsApp passes.
func Gate(pred rule.Matcher, cmd *command.Command, sh shell.Shell, names []string, minArgs int) bool {
	if !IsApp(cmd, names, minArgs) {
		return false
	}
	return pred(cmd, sh)
}

// ForApp returns a predicate restricted to the given executables.
func ForApp(names []string, minArgs int, pred rule.Matcher) rule.Matcher {
	allowed := slices.Clone(names)
	return func(cmd *command.Command, sh shell.Shell) bool {
		return Gate(pred, cmd, sh, allowed, minArgs)
	}
}

// OutputContains is a predicate matching when the captured output holds
// every one of the given fragments.
func OutputContains(fragments ...string) rule.Matcher {
	frags := slices.Clone(fragments)
	return func(cmd *command.Command, _ shell.Shell) bool {
		out, ok := cmd.Output()
		if !ok {
			return false
		}
		for _, f := range frags {
			if !strings.Contains(out, f) {
				return false
			}
		}
		return true
	}
}
