package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/config"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/rules"
	"github.com/luizvbo/ohcrab/internal/shell"
	"github.com/luizvbo/ohcrab/internal/ui"
)

// execute runs the root command with fresh flag state and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := executeTo(t, &out, stdin, args...)
	return out.String(), err
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errBrokenPipe }

var errBrokenPipe = errors.New("broken pipe")

func executeTo(t *testing.T, out io.Writer, stdin string, args ...string) error {
	t.Helper()

	fixOpts = fixOptions{}
	for _, c := range []*cobra.Command{fixCmd, rulesCmd, configShowCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	var errOut bytes.Buffer
	rootCmd.SetOut(out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", path}, args...))
	return rootCmd.ExecuteContext(context.Background())
}

func TestJoinScript(t *testing.T) {
	assert.Equal(t, "git brnch", joinScript([]string{"git brnch"}))
	assert.Equal(t, "git brnch", joinScript([]string{"git", "brnch"}))
	assert.Equal(t, "cat 'my file.txt'", joinScript([]string{"cat", "my file.txt"}))
}

func TestFixPrintsScriptsForShell(t *testing.T) {
	out, err := execute(t, "", "fix", "--output", "", "--", "sl")
	require.NoError(t, err)
	assert.Equal(t, "ls\n", out)
}

func TestFixReadsOutputFromStdin(t *testing.T) {
	out, err := execute(t, "mkdir: cannot create directory 'a/b': No such file or directory\n",
		"fix", "--output", "-", "--", "mkdir", "a/b")
	require.NoError(t, err)
	assert.Equal(t, "mkdir -p a/b\n", out)
}

func TestFixJSON(t *testing.T) {
	out, err := execute(t, "", "fix", "--format", "json", "--output", "", "--", "sl")
	require.NoError(t, err)

	var got []rule.CorrectedCommand
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "ls", got[0].Script)
	assert.Equal(t, "sl_ls", got[0].Rule)
}

func TestFixNoSuggestions(t *testing.T) {
	out, err := execute(t, "", "fix", "--output", "hi", "--", "echo", "hi")
	assert.ErrorIs(t, err, errNoFixes)
	assert.Empty(t, out)
}

func TestFixNoSuggestionsReportsWriteError(t *testing.T) {
	err := executeTo(t, brokenWriter{}, "", "fix", "--format", "json", "--output", "hi", "--", "echo", "hi")
	assert.ErrorIs(t, err, errBrokenPipe)
	assert.NotErrorIs(t, err, errNoFixes)
}

func TestFixRejectsBadFormat(t *testing.T) {
	_, err := execute(t, "", "fix", "--format", "xml", "--output", "", "--", "sl")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRulesJSONFiltered(t *testing.T) {
	out, err := execute(t, "", "rules", "--format", "json", "push")
	require.NoError(t, err)

	var rows []ui.RuleRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)
	assert.Equal(t, "git_push_set_upstream", rows[0].Name)
}

func TestConfigPath(t *testing.T) {
	out, err := execute(t, "", "config", "path")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "config.yaml"))
}

func TestConfigShow(t *testing.T) {
	out, err := execute(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "pipeline:")
	assert.Contains(t, out, "workers: 1")
}

func TestRuleRowsMarksUnselected(t *testing.T) {
	all := rules.Registry(rules.Deps{})
	selected, unknown := rules.Select(all, rules.Selection{
		Disabled: []string{"sudo"},
		Priority: map[string]int{"touch": 10},
	})
	assert.Empty(t, unknown)

	rows := ruleRows(all, selected, "")
	require.Len(t, rows, len(all))
	for _, row := range rows {
		switch row.Name {
		case "sudo":
			assert.False(t, row.Enabled)
		case "touch":
			assert.True(t, row.Enabled)
			assert.Equal(t, 10, row.Priority)
		}
	}
}

func TestNewCorrectorAppliesSelection(t *testing.T) {
	cfg := *config.Default()
	cfg.Rules.Disabled = []string{"sl_ls"}
	c := newCorrector(cfg, rules.Deps{})

	assert.NotContains(t, rules.Names(c.Rules()), "sl_ls")
	got := c.Corrected(context.Background(), command.NewWithoutOutput("sl"), shell.New(shell.Bash))
	assert.Empty(t, got)
}
