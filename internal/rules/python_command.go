package rules

import (
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// pythonCommand runs a non-executable .py script through the interpreter.
func pythonCommand() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		return strings.HasSuffix(c.Token(0), ".py") &&
			(strings.Contains(out, "Permission denied") || strings.Contains(out, "command not found"))
	}
	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		return []string{"python " + c.Script()}, nil
	}
	return rule.New("python_command", match, generate)
}
