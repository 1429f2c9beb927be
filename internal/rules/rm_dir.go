package rules

import (
	"regexp"
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

var rmRE = regexp.MustCompile(`\brm (.*)`)

// rmDir removes a directory recursively after rm refused it.
func rmDir() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		return strings.Contains(strings.ToLower(out), "is a directory")
	}
	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		flags := "-rf"
		if strings.Contains(c.Script(), "hdfs") {
			flags = "-r"
		}
		return []string{rmRE.ReplaceAllString(c.Script(), "rm "+flags+" $1")}, nil
	}
	return rule.New("rm_dir",
		gate.WithoutSudo(gate.ForApp([]string{"rm", "hdfs"}, 0, match)),
		gate.SudoGenerator(generate),
	)
}
