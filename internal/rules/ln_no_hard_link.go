package rules

import (
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// lnNoHardLink turns a refused hard link to a directory into a symlink.
func lnNoHardLink() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		return strings.HasSuffix(strings.TrimSpace(out), "hard link not allowed for directory") &&
			strings.HasPrefix(c.Script(), "ln ")
	}
	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		return []string{"ln -s " + strings.TrimPrefix(c.Script(), "ln ")}, nil
	}
	return rule.New("ln_no_hard_link", gate.WithoutSudo(match), gate.SudoGenerator(generate))
}
