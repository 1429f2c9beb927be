package rules

import (
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// chmodX makes a local script executable before running it again.
func chmodX(d Deps) rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		path := c.Token(0)
		if !strings.HasPrefix(path, "./") {
			return false
		}
		out, _ := c.Output()
		if !strings.Contains(strings.ToLower(out), "permission denied") {
			return false
		}
		info, err := d.FS.Stat(path)
		return err == nil && info.Mode().Perm()&0o111 == 0
	}

	generate := func(c *command.Command, sh shell.Shell) ([]string, error) {
		sh = shell.Must(sh)
		target := strings.TrimPrefix(c.Token(0), "./")
		return []string{shell.Sequence(sh, "chmod +x "+sh.Quote(target), c.Script())}, nil
	}

	return rule.New("chmod_x", match, generate)
}
