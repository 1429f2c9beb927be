package action

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luizvbo/ohcrab/internal/rule"
)

const knownHosts = "host-a ssh-rsa AAAA\nhost-b ssh-rsa BBBB\nhost-c ssh-rsa CCCC\nhost-d ssh-ed25519 DDDD\n"

func removeLines(path, lines string) rule.Action {
	return rule.Action{Kind: rule.RemoveLines, Args: map[string]string{"path": path, "lines": lines}}
}

func TestRemoveLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/home/u/.ssh/known_hosts", []byte(knownHosts), 0o600))

	e := &Executor{FS: fs}
	require.NoError(t, e.Execute(removeLines("/home/u/.ssh/known_hosts", "2,4,99")))

	got, err := afero.ReadFile(fs, "/home/u/.ssh/known_hosts")
	require.NoError(t, err)
	assert.Equal(t, "host-a ssh-rsa AAAA\nhost-c ssh-rsa CCCC\n", string(got))

	info, err := fs.Stat("/home/u/.ssh/known_hosts")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())
}

func TestExecuteRunsFollowUps(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/u/known_hosts", []byte(knownHosts), 0o600))
	require.NoError(t, afero.WriteFile(fs, "/etc/ssh/ssh_known_hosts", []byte(knownHosts), 0o644))

	a := removeLines("/u/known_hosts", "1")
	a.Then = []rule.Action{removeLines("/etc/ssh/ssh_known_hosts", "3,4")}

	e := &Executor{FS: fs}
	require.NoError(t, e.Execute(a))

	got, err := afero.ReadFile(fs, "/u/known_hosts")
	require.NoError(t, err)
	assert.Equal(t, "host-b ssh-rsa BBBB\nhost-c ssh-rsa CCCC\nhost-d ssh-ed25519 DDDD\n", string(got))
	got, err = afero.ReadFile(fs, "/etc/ssh/ssh_known_hosts")
	require.NoError(t, err)
	assert.Equal(t, "host-a ssh-rsa AAAA\nhost-b ssh-rsa BBBB\n", string(got))
}

func TestExecuteStopsAtFailedStep(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/later", []byte(knownHosts), 0o600))

	a := removeLines("/missing", "1")
	a.Then = []rule.Action{removeLines("/later", "1")}

	e := &Executor{FS: fs}
	assert.Error(t, e.Execute(a))
	got, err := afero.ReadFile(fs, "/later")
	require.NoError(t, err)
	assert.Equal(t, knownHosts, string(got))
}

func TestExecuteNoAction(t *testing.T) {
	e := &Executor{FS: afero.NewMemMapFs()}
	assert.NoError(t, e.Execute(rule.Action{}))
}

func TestExecuteErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/f", []byte("a\n"), 0o644))
	e := &Executor{FS: fs}

	assert.ErrorIs(t, e.Execute(rule.Action{Kind: "reboot"}), ErrUnknownKind)
	assert.ErrorIs(t, e.Execute(removeLines("", "1")), ErrBadArgs)
	assert.ErrorIs(t, e.Execute(removeLines("/f", "")), ErrBadArgs)
	assert.ErrorIs(t, e.Execute(removeLines("/f", "0")), ErrBadArgs)
	assert.ErrorIs(t, e.Execute(removeLines("/f", "x")), ErrBadArgs)
	assert.Error(t, e.Execute(removeLines("/missing", "1")))
}
