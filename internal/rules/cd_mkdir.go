package rules

import (
	"regexp"
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

var cdTargetRE = regexp.MustCompile(`^cd (.*)`)

var cdMissingDir = []string{
	"no such file or directory",
	"cd: can't cd to",
	"does not exist",
}

// cdMkdir creates the directory cd could not enter.
func cdMkdir() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		if !strings.HasPrefix(c.Script(), "cd ") {
			return false
		}
		out, _ := c.Output()
		out = strings.ToLower(out)
		for _, s := range cdMissingDir {
			if strings.Contains(out, s) {
				return true
			}
		}
		return false
	}

	generate := func(c *command.Command, sh shell.Shell) ([]string, error) {
		m := cdTargetRE.FindStringSubmatch(c.Script())
		if m == nil {
			return nil, nil
		}
		return []string{shell.Sequence(sh, "mkdir -p "+m[1], "cd "+m[1])}, nil
	}

	return rule.New("cd_mkdir",
		gate.WithoutSudo(gate.ForApp([]string{"cd"}, 0, match)),
		gate.SudoGenerator(generate),
	)
}
