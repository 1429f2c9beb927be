package gate

import (
	"regexp"
	"strings"
)

// ReplaceArgument swaps the argument from for to in script. A trailing
// occurrence wins; otherwise the first space-delimited occurrence is
// replaced. The script comes back unchanged when from is not a whole word.
func ReplaceArgument(script, from, to string) string {
	atEnd := regexp.MustCompile(` ` + regexp.QuoteMeta(from) + `$`)
	if loc := atEnd.FindStringIndex(script); loc != nil {
		return script[:loc[0]] + " " + to
	}
	return strings.Replace(script, " "+from+" ", " "+to+" ", 1)
}
