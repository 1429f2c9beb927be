package rules

import (
	"regexp"
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

var brewFormulaRE = regexp.MustCompile(`No available formula with the name "(?:[^"]+)"\. Did you mean (.+)\?`)

func brewInstall() rule.Rule {
	match := func(c *command.Command, sh shell.Shell) bool {
		return strings.Contains(c.Script(), "install") &&
			gate.OutputContains("No available formula", "Did you mean")(c, sh)
	}

	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		out, _ := c.Output()
		m := brewFormulaRE.FindStringSubmatch(out)
		if m == nil {
			return nil, nil
		}
		formulas := strings.Split(strings.ReplaceAll(m[1], " or ", ", "), ", ")
		scripts := make([]string, 0, len(formulas))
		for _, f := range formulas {
			scripts = append(scripts, "brew install "+strings.TrimSpace(f))
		}
		return scripts, nil
	}

	return rule.New("brew_install", gate.ForApp([]string{"brew"}, 1, match), generate)
}
