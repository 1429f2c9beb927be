// Package capture re-runs a failed command to collect the output rules
// match against.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// DefaultTimeout bounds one capture.
const DefaultTimeout = 3 * time.Second

// ErrInteractive is returned for programs that would wait on the terminal.
var ErrInteractive = errors.New("interactive command not captured")

// Programs that take over the terminal or wait for input.
var interactive = []string{
	"vim", "vi", "nvim", "nano", "emacs", "less", "more", "man",
	"top", "htop", "btop", "watch",
	"ssh", "telnet", "psql", "mysql", "sqlite3", "irb", "python", "python3", "node",
}

// IsInteractive reports whether script starts one of the programs above.
func IsInteractive(script string) bool {
	fields := command.Split(script)
	if len(fields) > 0 && fields[0] == "sudo" {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return true
	}
	return slices.Contains(interactive, strings.ToLower(filepath.Base(fields[0])))
}

// Runner executes a script through a shell.
type Runner func(ctx context.Context, binary string, args []string) (output []byte, exitCode int, err error)

// execRunner runs the shell for real with stdin detached.
func execRunner(ctx context.Context, binary string, args []string) ([]byte, int, error) {
	var buf bytes.Buffer
	c := exec.CommandContext(ctx, binary, args...)
	c.Stdout = &buf
	c.Stderr = &buf
	c.Env = append(os.Environ(), "LANG=C", "LC_ALL=C", "GIT_TRACE=1")

	err := c.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return buf.Bytes(), 0, nil
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		return buf.Bytes(), exitErr.ExitCode(), nil
	default:
		return buf.Bytes(), -1, err
	}
}

// Capturer re-runs scripts.
type Capturer struct {
	Timeout time.Duration
	Run     Runner
}

// New returns a Capturer using real processes.
func New(timeout time.Duration) *Capturer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Capturer{Timeout: timeout, Run: execRunner}
}

// Capture runs script through sh and returns a Command holding its combined
// output and exit status. A non-zero exit is the expected case and is not
// an error.
func (c *Capturer) Capture(ctx context.Context, sh shell.Shell, script string) (*command.Command, error) {
	if IsInteractive(script) {
		return nil, fmt.Errorf("%w: %s", ErrInteractive, script)
	}
	sh = shell.Must(sh)

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	out, code, err := c.Run(ctx, sh.Binary(), Args(sh, script))
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("capture %q: timed out after %s", script, c.Timeout)
		}
		return nil, fmt.Errorf("capture %q: %w", script, err)
	}
	return command.New(script, string(out)).WithExitCode(code), nil
}

// Args returns the arguments that make sh run script non-interactively.
func Args(sh shell.Shell, script string) []string {
	if sh.Name() == shell.PowerShell {
		return []string{"-NoProfile", "-NonInteractive", "-Command", script}
	}
	return []string{"-c", script}
}
