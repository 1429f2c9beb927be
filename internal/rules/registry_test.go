package rules

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
	"github.com/luizvbo/ohcrab/internal/vocab"
)

var bash = shell.New(shell.Bash)

func byName(t *testing.T, all []rule.Rule, name string) rule.Rule {
	t.Helper()
	for _, r := range all {
		if r.Name() == name {
			return r
		}
	}
	require.Failf(t, "rule not registered", "%s", name)
	return rule.Rule{}
}

// suggest runs one rule the way the dispatcher does and returns its scripts.
func suggest(r rule.Rule, c *command.Command) []string {
	if !r.IsMatch(c, bash) {
		return nil
	}
	var out []string
	for _, cc := range r.Candidates(c, bash) {
		out = append(out, cc.Script)
	}
	return out
}

// suggestAll runs every rule and returns all scripts in registry order.
func suggestAll(all []rule.Rule, c *command.Command) []string {
	var out []string
	for _, r := range all {
		out = append(out, suggest(r, c)...)
	}
	return out
}

func TestRegistryNamesUnique(t *testing.T) {
	all := Registry(Deps{})
	seen := map[string]bool{}
	for _, name := range Names(all) {
		assert.False(t, seen[name], "duplicate rule %s", name)
		seen[name] = true
	}
	assert.GreaterOrEqual(t, len(all), 25)
}

func TestRegistryPriorities(t *testing.T) {
	all := Registry(Deps{})
	assert.Equal(t, 1100, byName(t, all, "git_add").Priority())
	assert.Equal(t, 3000, byName(t, all, "no_command").Priority())
	assert.Equal(t, rule.DefaultPriority, byName(t, all, "cp_create_destination").Priority())
	assert.False(t, byName(t, all, "ls_lah").NeedsOutput())
	assert.True(t, byName(t, all, "ssh_known_hosts").HasEffect())
}

func TestAptInvalidOperationUsesHelpVocabulary(t *testing.T) {
	all := Registry(Deps{Vocab: vocab.Static{"apt": {"list", "search", "install", "remove"}}})
	c := command.New("apt isntall vim", "E: Invalid operation isntall")
	assert.Equal(t, []string{"apt install vim"}, suggestAll(all, c))
}

func TestCpCreatesMissingDestination(t *testing.T) {
	all := Registry(Deps{})
	c := command.New("cp foo bar/baz", "cp: bar/baz: No such file or directory")
	assert.Equal(t, []string{"mkdir -p bar && cp foo bar/baz"}, suggestAll(all, c))
}

func TestGitPullSetsUpstreamFirst(t *testing.T) {
	out := "There is no tracking information for the current branch.\n" +
		"If you wish to set tracking information for this branch you can do so with:\n\n" +
		"    git branch --set-upstream-to=origin/master master\n"
	all := Registry(Deps{})
	got := suggestAll(all, command.New("git pull", out))
	assert.Equal(t, []string{"git branch --set-upstream-to=origin/master master && git pull"}, got)
}

func TestSelect(t *testing.T) {
	off := rule.New("off", nil, nil, rule.EnabledByDefault(false))
	all := []rule.Rule{
		rule.New("a", nil, nil),
		rule.New("b", nil, nil),
		off,
	}

	got, unknown := Select(all, Selection{})
	assert.Equal(t, []string{"a", "b"}, Names(got))
	assert.Empty(t, unknown)

	got, unknown = Select(all, Selection{
		Enabled:  []string{"off"},
		Disabled: []string{"a", "nope"},
		Priority: map[string]int{"b": 5, "zzz": 1},
	})
	require.Equal(t, []string{"b", "off"}, Names(got))
	assert.Equal(t, 5, got[0].Priority())
	assert.True(t, got[1].Enabled())
	assert.Equal(t, []string{"nope", "zzz"}, unknown)

	assert.Equal(t, []string{"a", "b", "off"}, Names(all), "input is not modified")
}

func TestPathExecutables(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/usr/bin/git", nil, 0o755))
	require.NoError(t, afero.WriteFile(fs, "/usr/bin/readme", nil, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/bin/ls", nil, 0o755))
	require.NoError(t, afero.WriteFile(fs, "/bin/git", nil, 0o755))
	require.NoError(t, fs.MkdirAll("/bin/subdir", 0o755))

	got := PathExecutables(fs, "/usr/bin:/bin::/missing")
	assert.Equal(t, []string{"git", "ls"}, got)
}

func TestMatchedLines(t *testing.T) {
	out := "git: 'brnch' is not a git command. See 'git --help'.\n\nThe most similar commands are\n\tbranch\n\tbranches\n"
	assert.Equal(t, []string{"branch", "branches"}, matchedLines(out, "The most similar command"))
	assert.Empty(t, matchedLines(out, "Did you mean"))
}
