package rules

import (
	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

func dockerLogin() rule.Rule {
	match := gate.OutputContains("access denied", "may require 'docker login'")
	generate := func(c *command.Command, sh shell.Shell) ([]string, error) {
		return []string{shell.Sequence(sh, "docker login", c.Script())}, nil
	}
	return rule.New("docker_login", gate.ForApp([]string{"docker"}, 1, match), generate)
}
