package rules

import (
	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

func slLs() rule.Rule {
	return rule.New("sl_ls",
		func(c *command.Command, _ shell.Shell) bool { return c.Script() == "sl" },
		func(*command.Command, shell.Shell) ([]string, error) { return []string{"ls"}, nil },
		rule.RequiresOutput(false),
	)
}
