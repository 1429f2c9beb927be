package rules

import (
	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

func cdCs() rule.Rule {
	return rule.New("cd_cs",
		func(c *command.Command, _ shell.Shell) bool { return c.Token(0) == "cs" },
		func(c *command.Command, _ shell.Shell) ([]string, error) {
			return []string{"cd" + c.Script()[len("cs"):]}, nil
		},
		rule.WithPriority(900),
		rule.RequiresOutput(false),
	)
}
