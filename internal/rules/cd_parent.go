package rules

import (
	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// cdParent fixes the missing space in "cd..".
func cdParent() rule.Rule {
	return rule.New("cd_parent",
		func(c *command.Command, _ shell.Shell) bool { return c.Script() == "cd.." },
		func(*command.Command, shell.Shell) ([]string, error) { return []string{"cd .."}, nil },
		rule.RequiresOutput(false),
	)
}
