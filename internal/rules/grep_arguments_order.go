package rules

import (
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// grepArgumentsOrder moves the file argument after the pattern.
func grepArgumentsOrder(d Deps) rule.Rule {
	actualFile := func(c *command.Command) int {
		for i, tok := range c.Tokens() {
			if i == 0 || strings.HasPrefix(tok, "-") {
				continue
			}
			if exists(d, tok) {
				return i
			}
		}
		return -1
	}

	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		return strings.Contains(out, ": No such file or directory") && actualFile(c) > 0
	}

	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		i := actualFile(c)
		if i < 0 {
			return nil, nil
		}
		tokens := c.Tokens()
		file := tokens[i]
		tokens = append(slices.Delete(tokens, i, i+1), file)
		return []string{shellquote.Join(tokens...)}, nil
	}

	return rule.New("grep_arguments_order", gate.ForApp([]string{"grep", "egrep"}, 0, match), generate)
}
