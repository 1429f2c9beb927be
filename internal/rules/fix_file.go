package rules

import (
	"regexp"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// Locations printed by compilers, interpreters and shells, most specific
// first.
var fileLocationPatterns = compileAll(
	`(?m)^    at (?P<file>[^:\n]+):(?P<line>[0-9]+):(?P<col>[0-9]+)`,
	`(?m)^   (?P<file>[^:\n]+):(?P<line>[0-9]+):(?P<col>[0-9]+)`,
	`(?m)^  File "(?P<file>[^:\n]+)", line (?P<line>[0-9]+)`,
	`(?m)^awk: (?P<file>[^:\n]+):(?P<line>[0-9]+):`,
	`(?m)^fatal: bad config file line (?P<line>[0-9]+) in (?P<file>[^:\n]+)`,
	`(?m)^llc: (?P<file>[^:\n]+):(?P<line>[0-9]+):(?P<col>[0-9]+):`,
	`(?m)^lua: (?P<file>[^:\n]+):(?P<line>[0-9]+):`,
	`(?m)^(?P<file>[^:\n]+) \(line (?P<line>[0-9]+)\):`,
	`(?m)^(?P<file>[^:\n]+): line (?P<line>[0-9]+): `,
	`(?m)^(?P<file>[^:\n]+):(?P<line>[0-9]+):(?P<col>[0-9]+)`,
	`(?m)^(?P<file>[^:\n]+):(?P<line>[0-9]+):`,
	`(?m)^at (?P<file>[^:\n]+) line (?P<line>[0-9]+)`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

type fileLocation struct {
	file string
	line string
}

// fixFile opens $EDITOR at the file and line an error points to, then
// reruns the command.
func fixFile(d Deps) rule.Rule {
	search := func(c *command.Command) (fileLocation, bool) {
		out, _ := c.Output()
		for _, re := range fileLocationPatterns {
			m := re.FindStringSubmatch(out)
			if m == nil {
				continue
			}
			loc := fileLocation{
				file: m[re.SubexpIndex("file")],
				line: m[re.SubexpIndex("line")],
			}
			if isFile(d.FS, loc.file) {
				return loc, true
			}
		}
		return fileLocation{}, false
	}

	match := func(c *command.Command, _ shell.Shell) bool {
		if d.Getenv("EDITOR") == "" {
			return false
		}
		_, ok := search(c)
		return ok
	}

	generate := func(c *command.Command, sh shell.Shell) ([]string, error) {
		editor := d.Getenv("EDITOR")
		loc, ok := search(c)
		if editor == "" || !ok {
			return nil, nil
		}
		sh = shell.Must(sh)
		jump := editor + " " + sh.Quote(loc.file) + " +" + loc.line
		return []string{shell.Sequence(sh, jump, c.Script())}, nil
	}

	return rule.New("fix_file", match, generate)
}
