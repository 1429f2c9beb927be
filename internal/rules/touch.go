package rules

import (
	"path"
	"regexp"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

var touchMissingRE = regexp.MustCompile(`touch: cannot touch '([^']+)': No such file or directory`)

// touch creates the parent directory of a file touch could not create.
func touch() rule.Rule {
	match := gate.OutputContains("touch: cannot touch", "No such file or directory")

	generate := func(c *command.Command, sh shell.Shell) ([]string, error) {
		out, _ := c.Output()
		m := touchMissingRE.FindStringSubmatch(out)
		if m == nil {
			return nil, nil
		}
		dir := path.Dir(m[1])
		if dir == "." {
			return nil, nil
		}
		return []string{shell.Sequence(sh, "mkdir -p "+dir, c.Script())}, nil
	}

	return rule.New("touch",
		gate.WithoutSudo(gate.ForApp([]string{"touch"}, 0, match)),
		gate.SudoGenerator(generate),
	)
}
