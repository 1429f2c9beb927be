package rules

import (
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// goRun appends the missing .go extension to "go run main".
func goRun() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		s := c.Script()
		return strings.HasPrefix(s, "go run ") && !strings.HasSuffix(s, ".go")
	}
	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		return []string{c.Script() + ".go"}, nil
	}
	return rule.New("go_run", gate.ForApp([]string{"go"}, 1, match), generate)
}
