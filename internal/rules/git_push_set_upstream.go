package rules

import (
	"regexp"
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

var gitPushSuggestionRE = regexp.MustCompile(`git push (.*)`)

// gitPushSetUpstream pushes with the upstream git printed for a branch that
// has none.
func gitPushSetUpstream() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		return slices.Contains(c.Tokens(), "push") && strings.Contains(out, "git push --set-upstream")
	}

	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		out, _ := c.Output()
		all := gitPushSuggestionRE.FindAllStringSubmatch(out, -1)
		if len(all) == 0 {
			return nil, nil
		}
		args := strings.TrimSpace(all[len(all)-1][1])

		// Drop an upstream flag the user already passed so it is not doubled.
		tokens := c.Tokens()
		kept := tokens[:0:0]
		for i := 0; i < len(tokens); i++ {
			if tokens[i] == "-u" || tokens[i] == "--set-upstream" {
				i++
				continue
			}
			kept = append(kept, tokens[i])
		}
		script := shellquote.Join(kept...)
		return []string{gate.ReplaceArgument(script, "push", "push "+args)}, nil
	}

	return rule.New("git_push_set_upstream",
		gate.GitSupport(match),
		gate.GitSupportGenerator(generate),
	)
}
