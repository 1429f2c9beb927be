package rules

import (
	"regexp"
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

var gitSetUpstreamRE = regexp.MustCompile(`(git branch --set-upstream-to=\S+ \S+)`)

// gitPull sets the tracking branch git asked for, then pulls again.
func gitPull() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		return strings.Contains(c.Script(), "pull") && strings.Contains(out, "set-upstream")
	}

	generate := func(c *command.Command, sh shell.Shell) ([]string, error) {
		out, _ := c.Output()
		m := gitSetUpstreamRE.FindStringSubmatch(out)
		if m == nil {
			return nil, nil
		}
		return []string{shell.Sequence(sh, m[1], c.Script())}, nil
	}

	return rule.New("git_pull",
		gate.GitSupport(match),
		gate.GitSupportGenerator(generate),
	)
}
