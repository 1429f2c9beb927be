package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/config"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

var sample = []rule.CorrectedCommand{
	{Script: "git status", Priority: 1000, Rule: "git_not_command"},
	{Script: "git stash", Priority: 1000, Rule: "git_not_command"},
}

func TestSuggestionsPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf).Suggestions(sample))
	assert.Equal(t, "git status\ngit stash\n", buf.String())
}

func TestSuggestionsPlainEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf).Suggestions(nil))
	assert.Empty(t, buf.String())
}

func TestSuggestionsDecorated(t *testing.T) {
	var buf bytes.Buffer
	cands := append(sample, rule.CorrectedCommand{
		Script: "ssh host",
		Rule:   "ssh_known_hosts",
		Action: rule.Action{Kind: rule.RemoveLines, Args: map[string]string{"path": "/h", "lines": "2"}},
	})
	require.NoError(t, NewRenderer(&buf, Decorated(true), WithWidth(80)).Suggestions(cands))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Suggestions", lines[0])
	assert.Equal(t, "  1. git status  git_not_command", lines[1])
	assert.Equal(t, "  2. git stash  git_not_command", lines[2])
	assert.Equal(t, "  3. ssh host  ssh_known_hosts", lines[3])
	assert.Equal(t, "     then: remove_lines(lines=2, path=/h)", lines[4])
}

func TestSuggestionsDecoratedEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, Decorated(true)).Suggestions(nil))
	assert.Equal(t, "No fixes found.\n", buf.String())
}

func TestSuggestionsWrapLongScripts(t *testing.T) {
	var buf bytes.Buffer
	long := []rule.CorrectedCommand{{Script: "git commit -m 'a fairly long message for a narrow terminal'", Rule: "r"}}
	require.NoError(t, NewRenderer(&buf, Decorated(true), WithWidth(30)).Suggestions(long))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Greater(t, len(lines), 2)
	for _, l := range lines[2:] {
		assert.True(t, strings.HasPrefix(l, "     "), "continuation %q is indented", l)
	}
}

func TestRulesTable(t *testing.T) {
	sudo := rule.New("sudo", func(*command.Command, shell.Shell) bool { return false }, nil)
	lah := rule.New("ls_lah", func(*command.Command, shell.Shell) bool { return false }, nil,
		rule.RequiresOutput(false), rule.EnabledByDefault(false))

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf).Rules([]RuleRow{RowFor(sudo), RowFor(lah)}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Needs Output")
	assert.True(t, strings.HasPrefix(lines[1], "sudo "))
	assert.Contains(t, lines[1], "1000")
	assert.Contains(t, lines[2], "no")
}

func TestLabel(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{})
	assert.Equal(t, "Remove Lines", r.Label("remove_lines"))
	assert.Equal(t, "Git Push Set Upstream", r.Label("git_push_set_upstream"))
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, config.FormatJSON, sample))

	var got []rule.CorrectedCommand
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample, got)
}

func TestEncodeYAMLOmitsEmptyAction(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, config.FormatYAML, sample[:1]))
	assert.Contains(t, buf.String(), "script: git status")
	assert.NotContains(t, buf.String(), "action")
}

func TestEncodeUnknownFormat(t *testing.T) {
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, "xml", sample), ErrFormat)
}
