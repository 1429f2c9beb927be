package rules

import (
	"github.com/kballard/go-shellquote"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// lsLah shows the long listing of whatever ls was asked for.
func lsLah() rule.Rule {
	match := gate.ForApp([]string{"ls"}, 0, func(*command.Command, shell.Shell) bool { return true })
	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		tokens := c.Tokens()
		rest := shellquote.Join(tokens[1:]...)
		if rest == "" {
			return []string{"ls -lah"}, nil
		}
		return []string{"ls -lah " + rest}, nil
	}
	return rule.New("ls_lah", match, generate, rule.RequiresOutput(false))
}
