package rules

import (
	"path"
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// cpCreateDestination creates the missing destination directory of cp or mv.
func cpCreateDestination() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		trimmed := strings.TrimRight(out, " \t\r\n")
		return strings.Contains(out, "No such file or directory") ||
			strings.HasSuffix(trimmed, "Not a directory") ||
			(strings.HasPrefix(out, "cp: directory") && strings.HasSuffix(trimmed, "does not exist"))
	}

	generate := func(c *command.Command, sh shell.Shell) ([]string, error) {
		dest := c.Token(c.Len() - 1)
		var dir string
		if strings.HasSuffix(dest, "/") || strings.HasSuffix(dest, `\`) {
			dir = strings.TrimRight(dest, `/\`)
		} else if i := strings.LastIndexAny(dest, `/\`); i >= 0 {
			dir = path.Clean(dest[:i+1])
		}
		if dir == "" || dir == "." {
			return nil, nil
		}
		return []string{shell.Sequence(sh, "mkdir -p "+dir, c.Script())}, nil
	}

	return rule.New("cp_create_destination",
		gate.WithoutSudo(gate.ForApp([]string{"cp", "mv"}, 0, match)),
		gate.SudoGenerator(generate),
	)
}
