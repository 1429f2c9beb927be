package rules

import (
	"slices"
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// Lower-cased fragments of messages printed by tools run without enough
// privileges.
var needsRoot = []string{
	"permission denied",
	"eacces",
	"pkg: insufficient privileges",
	"you cannot perform this operation unless you are root",
	"non-root users cannot",
	"operation not permitted",
	"not super-user",
	"superuser privilege",
	"root privilege",
	"this command has to be run under the root user.",
	"this operation requires root.",
	"requested operation requires superuser privilege",
	"must be run as root",
	"must run as root",
	"must be superuser",
	"must be root",
	"need to be root",
	"need root",
	"needs to be run as root",
	"only root can ",
	"you don't have access to the history db.",
	"authentication is required",
	"edspermissionerror",
	"you don't have write permissions",
	"use `sudo`",
	"sudorequirederror",
	"error: insufficient privileges",
	"updatedb: can not open a temporary file",
}

// sudo reruns the command with elevated privileges.
func sudo() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		if c.Token(0) == "sudo" && !slices.Contains(c.Tokens(), "&&") {
			return false
		}
		out, _ := c.Output()
		out = strings.ToLower(out)
		for _, frag := range needsRoot {
			if strings.Contains(out, frag) {
				return true
			}
		}
		return false
	}

	generate := func(c *command.Command, sh shell.Shell) ([]string, error) {
		script := c.Script()
		if strings.Contains(script, "&&") || strings.Contains(script, ">") {
			sh = shell.Must(sh)
			return []string{"sudo sh -c " + sh.Quote(script)}, nil
		}
		return []string{"sudo " + script}, nil
	}

	return rule.New("sudo", match, generate)
}
