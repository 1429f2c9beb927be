package rules

import (
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
	"github.com/luizvbo/ohcrab/pkg/fuzzy"
)

// noCommand replaces an unknown program with the closest ones on PATH.
func noCommand(d Deps) rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		if !strings.Contains(out, "not found") && !strings.Contains(out, "is not recognized as") {
			return false
		}
		program := c.Token(0)
		executables := d.Executables()
		if slices.Contains(executables, program) {
			return false
		}
		_, ok := fuzzy.Closest(program, executables)
		return ok
	}

	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		program := c.Token(0)
		rest := ""
		if args := c.Tokens()[1:]; len(args) > 0 {
			rest = " " + shellquote.Join(args...)
		}
		var out []string
		for _, name := range fuzzy.ClosestMatches(program, d.Executables()) {
			out = append(out, name+rest)
		}
		return out, nil
	}

	return rule.New("no_command",
		gate.WithoutSudo(match),
		gate.SudoGenerator(generate),
		rule.WithPriority(3000),
	)
}
