package rules

import (
	"regexp"
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

var cargoSuggestionRE = regexp.MustCompile("(?:Did you mean|a command with a similar name exists:)\\s*`([^`]+)`")

func cargoNoCommand() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		newStyle := strings.Contains(out, "error: no such command:") &&
			strings.Contains(out, "a command with a similar name exists:")
		oldStyle := strings.Contains(strings.ToLower(out), "no such subcommand") &&
			strings.Contains(out, "Did you mean")
		return newStyle || oldStyle
	}

	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		out, _ := c.Output()
		m := cargoSuggestionRE.FindStringSubmatch(out)
		if m == nil {
			return nil, nil
		}
		return []string{gate.ReplaceArgument(c.Script(), c.Token(1), m[1])}, nil
	}

	return rule.New("cargo_no_command", gate.ForApp([]string{"cargo"}, 1, match), generate)
}
