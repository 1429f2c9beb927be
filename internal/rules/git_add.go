package rules

import (
	"regexp"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

var gitPathspecRE = regexp.MustCompile(`error: pathspec '([^']*)' did not match any file\(s\) known to git`)

// gitAdd stages a file git does not know about yet.
func gitAdd(d Deps) rule.Rule {
	missing := func(c *command.Command) (string, bool) {
		out, _ := c.Output()
		m := gitPathspecRE.FindStringSubmatch(out)
		if m == nil || m[1] == "" {
			return "", false
		}
		return m[1], exists(d, m[1])
	}

	match := func(c *command.Command, _ shell.Shell) bool {
		_, ok := missing(c)
		return ok
	}

	generate := func(c *command.Command, sh shell.Shell) ([]string, error) {
		file, ok := missing(c)
		if !ok {
			return nil, nil
		}
		sh = shell.Must(sh)
		return []string{shell.Sequence(sh, "git add -- "+sh.Quote(file), c.Script())}, nil
	}

	return rule.New("git_add",
		gate.GitSupport(match),
		gate.GitSupportGenerator(generate),
		rule.WithPriority(1100),
	)
}

func exists(d Deps, path string) bool {
	_, err := d.FS.Stat(path)
	return err == nil
}
