package rules

import (
	"regexp"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

var gitBranchExistsRE = regexp.MustCompile(`fatal: [Aa] branch named '(.+)' already exists\.`)

// gitBranchExists offers to switch to, or recreate, a branch that is
// already there.
func gitBranchExists() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		return gitBranchExistsRE.MatchString(out)
	}

	generate := func(c *command.Command, sh shell.Shell) ([]string, error) {
		out, _ := c.Output()
		m := gitBranchExistsRE.FindStringSubmatch(out)
		if m == nil {
			return nil, nil
		}
		sh = shell.Must(sh)
		branch := sh.Quote(m[1])
		return []string{
			"git checkout " + branch,
			shell.Sequence(sh, "git branch -d "+branch, "git branch "+branch),
			shell.Sequence(sh, "git branch -d "+branch, "git checkout -b "+branch),
			shell.Sequence(sh, "git branch -D "+branch, "git branch "+branch),
			shell.Sequence(sh, "git branch -D "+branch, "git checkout -b "+branch),
		}, nil
	}

	return rule.New("git_branch_exists",
		gate.GitSupport(match),
		gate.GitSupportGenerator(generate),
	)
}
