package rules

import (
	"regexp"
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

var mkdirRE = regexp.MustCompile(`\bmkdir (.*)`)

func mkdirP() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		return strings.Contains(c.Script(), "mkdir") && strings.Contains(out, "No such file or directory")
	}
	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		return []string{mkdirRE.ReplaceAllString(c.Script(), "mkdir -p $1")}, nil
	}
	return rule.New("mkdir_p", gate.WithoutSudo(match), gate.SudoGenerator(generate))
}
