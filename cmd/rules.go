package cmd

import (
	"github.com/spf13/cobra"

	"github.com/luizvbo/ohcrab/internal/config"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/rules"
	"github.com/luizvbo/ohcrab/internal/ui"
	"github.com/luizvbo/ohcrab/pkg/fuzzy"
)

// rulesCmd lists the heuristics ohcrab knows
var rulesCmd = &cobra.Command{
	Use:   "rules [pattern]",
	Short: "List correction rules",
	Long: `List every correction rule with its priority and whether the current
configuration runs it. A pattern keeps the rules whose names contain its
letters in order, best match first.`,
	Example: `  ohcrab rules
  ohcrab rules git
  ohcrab rules --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRules,
}

var rulesFormat string

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().StringVar(&rulesFormat, "format", config.FormatText, "output format: text, json or yaml")
}

func runRules(cmd *cobra.Command, args []string) error {
	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}

	all := rules.Registry(rules.Deps{})
	selected, unknown := rules.Select(all, selectionFrom(*config.Get()))
	warnUnknownRules(unknown, rules.Names(all))

	rows := ruleRows(all, selected, pattern)
	if rulesFormat == config.FormatText {
		return ui.NewRenderer(cmd.OutOrStdout()).Rules(rows)
	}
	return ui.Encode(cmd.OutOrStdout(), rulesFormat, rows)
}

// ruleRows describes all as the selection will run them, filtered by pattern.
// Rules absent from selected are shown disabled.
func ruleRows(all, selected []rule.Rule, pattern string) []ui.RuleRow {
	active := make(map[string]rule.Rule, len(selected))
	for _, r := range selected {
		active[r.Name()] = r
	}
	byName := make(map[string]ui.RuleRow, len(all))
	for _, r := range all {
		if s, ok := active[r.Name()]; ok {
			byName[r.Name()] = ui.RowFor(s)
			continue
		}
		row := ui.RowFor(r)
		row.Enabled = false
		byName[r.Name()] = row
	}

	names := fuzzy.Filter(pattern, rules.Names(all))
	rows := make([]ui.RuleRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, byName[name])
	}
	return rows
}
