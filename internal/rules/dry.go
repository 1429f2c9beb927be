package rules

import (
	"github.com/kballard/go-shellquote"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// dry drops an accidentally repeated program name, as in "git git status".
func dry() rule.Rule {
	return rule.New("dry",
		func(c *command.Command, _ shell.Shell) bool {
			return c.Len() >= 2 && c.Token(0) == c.Token(1)
		},
		func(c *command.Command, _ shell.Shell) ([]string, error) {
			return []string{shellquote.Join(c.Tokens()[1:]...)}, nil
		},
		rule.WithPriority(900),
		rule.RequiresOutput(false),
	)
}
