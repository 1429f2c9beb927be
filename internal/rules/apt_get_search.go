package rules

import (
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// apt-get has no search subcommand; apt-cache does.
func aptGetSearch() rule.Rule {
	match := gate.ForApp([]string{"apt-get"}, 0, func(c *command.Command, _ shell.Shell) bool {
		return strings.HasPrefix(c.Script(), "apt-get search")
	})
	return rule.New("apt_get_search",
		gate.WithoutSudo(match),
		gate.SudoGenerator(func(c *command.Command, _ shell.Shell) ([]string, error) {
			return []string{"apt-cache" + strings.TrimPrefix(c.Script(), "apt-get")}, nil
		}),
	)
}
