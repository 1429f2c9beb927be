package rules

import (
	"regexp"
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

var (
	sshWarningREs = compileAll(
		`WARNING: POSSIBLE DNS SPOOFING DETECTED!`,
		`WARNING: REMOTE HOST IDENTIFICATION HAS CHANGED!`,
	)
	sshOffendingRE = regexp.MustCompile(`Offending (?:RSA|DSA|ECDSA|ED25519) key (?:for IP )?in (/[^:]*):(\d+)`)
)

// sshKnownHosts reruns ssh after dropping the stale host keys it complained
// about. The removal is attached as an action, one step per known_hosts file
// in the order ssh named them, and runs only once the suggestion is picked.
func sshKnownHosts() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		for _, re := range sshWarningREs {
			if re.MatchString(out) {
				return sshOffendingRE.MatchString(out)
			}
		}
		return false
	}

	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		return []string{c.Script()}, nil
	}

	effect := func(c *command.Command) rule.Action {
		out, _ := c.Output()
		var paths []string
		lines := make(map[string][]string)
		for _, m := range sshOffendingRE.FindAllStringSubmatch(out, -1) {
			if _, seen := lines[m[1]]; !seen {
				paths = append(paths, m[1])
			}
			lines[m[1]] = append(lines[m[1]], m[2])
		}
		if len(paths) == 0 {
			return rule.Action{}
		}

		actions := make([]rule.Action, len(paths))
		for i, path := range paths {
			actions[i] = rule.Action{
				Kind: rule.RemoveLines,
				Args: map[string]string{"path": path, "lines": strings.Join(lines[path], ",")},
			}
		}
		first := actions[0]
		first.Then = actions[1:]
		return first
	}

	return rule.New("ssh_known_hosts",
		gate.ForApp([]string{"ssh", "scp"}, 1, match),
		generate,
		rule.WithEffect(effect),
	)
}
