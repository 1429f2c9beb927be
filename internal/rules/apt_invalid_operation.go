package rules

import (
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
	"github.com/luizvbo/ohcrab/pkg/fuzzy"
)

var aptApps = []string{"apt", "apt-get", "apt-cache"}

// aptInvalidOperation fixes a mistyped apt operation using the operations
// apt itself lists in --help.
func aptInvalidOperation(d Deps) rule.Rule {
	match := gate.ForApp(aptApps, 0, gate.OutputContains("Invalid operation"))

	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		out, _ := c.Output()
		fields := strings.Fields(out)
		if len(fields) == 0 {
			return nil, nil
		}
		invalid := fields[len(fields)-1]

		app := gate.AppName(c)
		header := "Commands:"
		if app == "apt" {
			header = "Basic commands:"
		}
		ops := d.section(c.Token(0), []string{"--help"}, header)

		best, ok := fuzzy.Closest(invalid, ops)
		if !ok {
			return nil, nil
		}
		return []string{gate.ReplaceArgument(c.Script(), invalid, best)}, nil
	}

	return rule.New("apt_invalid_operation", gate.WithoutSudo(match), gate.SudoGenerator(generate))
}
