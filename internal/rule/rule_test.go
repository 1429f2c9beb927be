package rule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/shell"
)

func always(*command.Command, shell.Shell) bool { return true }

func fixed(scripts ...string) Generator {
	return func(*command.Command, shell.Shell) ([]string, error) {
		return scripts, nil
	}
}

func TestDefaults(t *testing.T) {
	r := New("example", always, fixed("ls"))
	assert.Equal(t, "example", r.Name())
	assert.True(t, r.Enabled())
	assert.Equal(t, DefaultPriority, r.Priority())
	assert.True(t, r.NeedsOutput())
	assert.False(t, r.HasEffect())
}

func TestOptions(t *testing.T) {
	r := New("example", always, fixed("ls"),
		WithPriority(900),
		EnabledByDefault(false),
		RequiresOutput(false),
		WithEffect(func(*command.Command) Action { return Action{Kind: RemoveLines} }),
	)
	assert.Equal(t, 900, r.Priority())
	assert.False(t, r.Enabled())
	assert.False(t, r.NeedsOutput())
	assert.True(t, r.HasEffect())

	assert.Equal(t, 900, New("neg", always, fixed(), WithPriority(-5)).Priority())
}

func TestWithPriorityCopies(t *testing.T) {
	r := New("example", always, fixed("ls"))
	changed := r.WithPriority(10)
	assert.Equal(t, DefaultPriority, r.Priority())
	assert.Equal(t, 10, changed.Priority())
	assert.False(t, r.WithEnabled(false).Enabled())
	assert.True(t, r.Enabled())
}

func TestIsMatchSkipsPredicateWithoutOutput(t *testing.T) {
	called := false
	r := New("needs_output", func(*command.Command, shell.Shell) bool {
		called = true
		return true
	}, fixed("ls"))

	assert.False(t, r.IsMatch(command.NewWithoutOutput("sl"), shell.New(shell.Bash)))
	assert.False(t, called, "predicate must not run when output is required but absent")

	assert.True(t, r.IsMatch(command.New("sl", ""), shell.New(shell.Bash)))
	assert.True(t, called)
}

func TestIsMatchWithoutOutputWhenNotRequired(t *testing.T) {
	r := New("sl_ls", func(c *command.Command, _ shell.Shell) bool {
		return c.Script() == "sl"
	}, fixed("ls"), RequiresOutput(false))

	assert.True(t, r.IsMatch(command.NewWithoutOutput("sl"), nil))
}

func TestIsMatchContainsPanics(t *testing.T) {
	r := New("broken", func(c *command.Command, _ shell.Shell) bool {
		return c.Tokens()[10] == "x"
	}, fixed("ls"))

	assert.NotPanics(t, func() {
		assert.False(t, r.IsMatch(command.New("ls", "out"), nil))
	})
}

func TestCandidatesPriorities(t *testing.T) {
	r := New("multi", always, fixed("a", "b", "c"), WithPriority(300))

	got := r.Candidates(command.New("x", "y"), nil)
	require.Len(t, got, 3)
	assert.Equal(t, []int{300, 600, 900}, []int{got[0].Priority, got[1].Priority, got[2].Priority})
	assert.Equal(t, "multi", got[0].Rule)
	assert.True(t, got[0].Action.IsZero())
}

func TestCandidatesDropsBlankScripts(t *testing.T) {
	r := New("blank", always, fixed("", "  ", "ls"))
	got := r.Candidates(command.New("x", "y"), nil)
	require.Len(t, got, 1)
	assert.Equal(t, "ls", got[0].Script)
	assert.Equal(t, 3*DefaultPriority, got[0].Priority)
}

func TestCandidatesContainsFailures(t *testing.T) {
	failing := New("err", always, func(*command.Command, shell.Shell) ([]string, error) {
		return []string{"partial"}, errors.New("tool exploded")
	})
	assert.Empty(t, failing.Candidates(command.New("x", "y"), nil))

	panicking := New("panic", always, func(*command.Command, shell.Shell) ([]string, error) {
		panic("regex blew up")
	})
	assert.NotPanics(t, func() {
		assert.Empty(t, panicking.Candidates(command.New("x", "y"), nil))
	})
}

func TestCandidatesAttachEffect(t *testing.T) {
	r := New("effect", always, fixed("ssh host", "ssh -v host"),
		WithEffect(func(c *command.Command) Action {
			return Action{Kind: RemoveLines, Args: map[string]string{"path": "/tmp/known_hosts", "lines": "3"}}
		}))

	got := r.Candidates(command.New("ssh host", "Offending key"), nil)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, RemoveLines, c.Action.Kind)
		assert.Equal(t, "3", c.Action.Args["lines"])
	}
	assert.Equal(t, "remove_lines(lines=3, path=/tmp/known_hosts)", got[0].Action.String())
}

func TestActionStringIncludesFollowUps(t *testing.T) {
	a := Action{
		Kind: RemoveLines,
		Args: map[string]string{"path": "/a", "lines": "1"},
		Then: []Action{{Kind: RemoveLines, Args: map[string]string{"path": "/b", "lines": "2,3"}}},
	}
	assert.Equal(t, "remove_lines(lines=1, path=/a) then remove_lines(lines=2,3, path=/b)", a.String())
}

func TestPanickingEffectYieldsNoAction(t *testing.T) {
	r := New("effect", always, fixed("ls"),
		WithEffect(func(*command.Command) Action { panic("bad effect") }))
	got := r.Candidates(command.New("x", "y"), nil)
	require.Len(t, got, 1)
	assert.True(t, got[0].Action.IsZero())
	assert.Equal(t, "none", got[0].Action.String())
}

func TestSameScript(t *testing.T) {
	a := CorrectedCommand{Script: "ls", Priority: 1}
	b := CorrectedCommand{Script: "ls", Priority: 9, Rule: "other"}
	c := CorrectedCommand{Script: "ls ", Priority: 1}
	assert.True(t, a.SameScript(b))
	assert.False(t, a.SameScript(c))
}
