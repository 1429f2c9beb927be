package gate

import (
	"regexp"

	"github.com/kballard/go-shellquote"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// gitApps are the executables treated as git. hub is GitHub's git wrapper.
var gitApps = []string{"git", "hub"}

var aliasExpansionRE = regexp.MustCompile(`trace: alias expansion: ([^ ]*) => ([^\n]*)`)

// expandGitAlias rewrites a git alias in the script using the expansion git
// printed with GIT_TRACE enabled.
func expandGitAlias(cmd *command.Command) *command.Command {
	out, ok := cmd.Output()
	if !ok {
		return cmd
	}
	m := aliasExpansionRE.FindStringSubmatch(out)
	if m == nil || m[1] == "" {
		return cmd
	}

	// git quotes every word of the expansion ('commit' '--amend'); requote
	// minimally so rules can look for plain "git commit --amend".
	expansion := shellquote.Join(command.Split(m[2])...)
	aliasRE := regexp.MustCompile(`\b` + regexp.QuoteMeta(m[1]) + `\b`)
	return cmd.WithScript(aliasRE.ReplaceAllLiteralString(cmd.Script(), expansion))
}

// GitSupport restricts pred to git (or hub) and expands git aliases first.
func GitSupport(pred rule.Matcher) rule.Matcher {
	return func(cmd *command.Command, sh shell.Shell) bool {
		if !IsApp(cmd, gitApps, 0) {
			return false
		}
		return pred(expandGitAlias(cmd), sh)
	}
}

// GitSupportGenerator applies the same alias expansion before gen.
func GitSupportGenerator(gen rule.Generator) rule.Generator {
	return func(cmd *command.Command, sh shell.Shell) ([]string, error) {
		return gen(expandGitAlias(cmd), sh)
	}
}
