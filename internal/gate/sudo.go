package gate

import (
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// SudoPrefix is the exact prefix stripped before matching. "sudo" alone,
// without the trailing space, is left untouched.
const SudoPrefix = "sudo "

func stripSudo(cmd *command.Command) (*command.Command, bool) {
	script := cmd.Script()
	if !strings.HasPrefix(script, SudoPrefix) {
		return cmd, false
	}
	return cmd.WithScript(script[len(SudoPrefix):]), true
}

// MatchWithoutSudo runs pred against the command with a leading "sudo "
// removed. The original command is not modified.
func MatchWithoutSudo(pred rule.Matcher, cmd *command.Command, sh shell.Shell) bool {
	stripped, _ := stripSudo(cmd)
	return pred(stripped, sh)
}

// GenerateWithoutSudo runs gen on the command without its "sudo " prefix and
// puts the prefix back on every candidate when the original had it.
func GenerateWithoutSudo(gen rule.Generator, cmd *command.Command, sh shell.Shell) ([]string, error) {
	stripped, hadSudo := stripSudo(cmd)
	scripts, err := gen(stripped, sh)
	if err != nil || !hadSudo {
		return scripts, err
	}
	out := make([]string, len(scripts))
	for i, s := range scripts {
		out[i] = SudoPrefix + s
	}
	return out, nil
}

// WithoutSudo lifts pred into a sudo-transparent predicate.
func WithoutSudo(pred rule.Matcher) rule.Matcher {
	return func(cmd *command.Command, sh shell.Shell) bool {
		return MatchWithoutSudo(pred, cmd, sh)
	}
}

// SudoGenerator lifts gen into a sudo-transparent generator.
func SudoGenerator(gen rule.Generator) rule.Generator {
	return func(cmd *command.Command, sh shell.Shell) ([]string, error) {
		return GenerateWithoutSudo(gen, cmd, sh)
	}
}
