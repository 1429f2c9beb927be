package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, InfoLevel, ParseLevel("info"))
	assert.Equal(t, WarnLevel, ParseLevel("warning"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, WarnLevel, ParseLevel("bogus"))
}

func TestNewWritesToConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "debug", Console: true, Writer: &buf})
	require.NoError(t, err)

	l.With("corrector").Debug("rule matched", "rule", "git_pull")

	out := buf.String()
	assert.Contains(t, out, "rule matched")
	assert.Contains(t, out, "git_pull")
	assert.Contains(t, out, "corrector")
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "warn", Console: true, Writer: &buf})
	require.NoError(t, err)

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l.SetLevel(DebugLevel)
	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Equal(t, DebugLevel, l.Level())
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ohcrab.log")
	l, err := New(Config{Level: "info", File: path})
	require.NoError(t, err)

	l.Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rot.log")
	rw, err := newRotatingWriter(Config{File: path, MaxSize: 1, MaxBackups: 2})
	require.NoError(t, err)
	defer rw.Close()

	chunk := bytes.Repeat([]byte("x"), 600*1024)
	_, err = rw.Write(chunk)
	require.NoError(t, err)
	_, err = rw.Write(chunk)
	require.NoError(t, err)

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err)
}
