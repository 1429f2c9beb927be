package rules

import (
	"regexp"
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/gate"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
	"github.com/luizvbo/ohcrab/pkg/fuzzy"
)

var gitBrokenCommandRE = regexp.MustCompile(`git: '([^']*)' is not a git command`)

var gitSuggestionHeaders = []string{"The most similar command", "Did you mean"}

// gitNotCommand replaces an unknown git subcommand with the ones git itself
// suggests, closest first.
func gitNotCommand() rule.Rule {
	match := func(c *command.Command, _ shell.Shell) bool {
		out, _ := c.Output()
		if !strings.Contains(out, " is not a git command. See 'git --help'.") {
			return false
		}
		for _, h := range gitSuggestionHeaders {
			if strings.Contains(out, h) {
				return true
			}
		}
		return false
	}

	generate := func(c *command.Command, _ shell.Shell) ([]string, error) {
		out, _ := c.Output()
		m := gitBrokenCommandRE.FindStringSubmatch(out)
		if m == nil {
			return nil, nil
		}
		return replaceCommand(c.Script(), m[1], matchedLines(out, gitSuggestionHeaders...)), nil
	}

	return rule.New("git_not_command",
		gate.GitSupport(match),
		gate.GitSupportGenerator(generate),
	)
}

// replaceCommand swaps broken for each of the closest suggestions.
func replaceCommand(script, broken string, suggestions []string) []string {
	ranked := fuzzy.ClosestMatches(broken, suggestions, fuzzy.WithMinRatio(0.1))
	out := make([]string, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, gate.ReplaceArgument(script, broken, strings.TrimSpace(s)))
	}
	return out
}
