// Package action runs the side-effects attached to a chosen suggestion.
package action

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/luizvbo/ohcrab/internal/logger"
	"github.com/luizvbo/ohcrab/internal/rule"
)

var (
	// ErrUnknownKind is returned for an action kind the executor cannot run.
	ErrUnknownKind = errors.New("unknown action kind")
	// ErrBadArgs is returned when an action is missing or has malformed args.
	ErrBadArgs = errors.New("invalid action arguments")
)

// Executor performs actions against a filesystem.
type Executor struct {
	FS afero.Fs
}

// NewExecutor returns an Executor on the real filesystem.
func NewExecutor() *Executor {
	return &Executor{FS: afero.NewOsFs()}
}

// Execute runs a and then its follow-ups, stopping at the first failure.
// The zero action is a no-op.
func (e *Executor) Execute(a rule.Action) error {
	if err := e.run(a); err != nil {
		return err
	}
	for _, next := range a.Then {
		if err := e.Execute(next); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) run(a rule.Action) error {
	switch a.Kind {
	case rule.NoAction:
		return nil
	case rule.RemoveLines:
		return e.removeLines(a.Args["path"], a.Args["lines"])
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, a.Kind)
	}
}

// removeLines deletes the given 1-based line numbers from path, keeping the
// file mode. Numbers past the end of the file are ignored.
func (e *Executor) removeLines(path, list string) error {
	if path == "" {
		return fmt.Errorf("%w: missing path", ErrBadArgs)
	}
	drop, err := parseLines(list)
	if err != nil {
		return err
	}

	info, err := e.FS.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := afero.ReadFile(e.FS, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var buf bytes.Buffer
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	removed := 0
	for n := 1; sc.Scan(); n++ {
		if drop[n] {
			removed++
			continue
		}
		buf.Write(sc.Bytes())
		buf.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}

	if err := afero.WriteFile(e.FS, path, buf.Bytes(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Debug("removed lines", "path", path, "count", removed)
	return nil
}

func parseLines(list string) (map[int]bool, error) {
	lines := make(map[int]bool)
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: line %q", ErrBadArgs, part)
		}
		lines[n] = true
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no lines", ErrBadArgs)
	}
	return lines, nil
}
