package rules

import (
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// catDir suggests ls when cat was pointed at a directory.
func catDir(d Deps) rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		return strings.HasPrefix(out, "cat: ") && isDir(d.FS, c.Token(1))
	}
	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		return []string{strings.Replace(c.Script(), "cat", "ls", 1)}, nil
	}
	return rule.New("cat_dir", gate.ForApp([]string{"cat"}, 1, match), generate)
}
