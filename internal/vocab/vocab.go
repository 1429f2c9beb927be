// Package vocab discovers the valid subcommands of a tool by reading its own
// help output.
package vocab

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/luizvbo/ohcrab/internal/cache"
	"github.com/luizvbo/ohcrab/internal/logger"
)

// DefaultTimeout bounds one help invocation.
const DefaultTimeout = 3 * time.Second

// ErrNoSection is returned by ParseSection when the header is not found.
var ErrNoSection = errors.New("section header not found")

// Runner runs a program and returns what it printed.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs real processes with a C locale so help text is stable.
type ExecRunner struct{}

// Output runs name with args and returns its combined output.
func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, name, args...)
	c.Env = append(os.Environ(), "LANG=C", "LC_ALL=C")
	return c.CombinedOutput()
}

// Source is what rules depend on to learn a tool's vocabulary.
type Source interface {
	Section(ctx context.Context, app string, args []string, header string) []string
}

// Lookup is the default Source.
type Lookup struct {
	runner  Runner
	timeout time.Duration
	cache   *cache.LRU[[]string]
	group   singleflight.Group
}

// Option configures a Lookup.
type Option func(*Lookup)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(l *Lookup) { l.runner = r }
}

// WithTimeout sets the per-call timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(l *Lookup) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithCache remembers parsed sections for the lifetime of the Lookup. Without
// it every call runs the tool again.
func WithCache(size int, ttl time.Duration) Option {
	return func(l *Lookup) {
		if size > 0 {
			l.cache = cache.New[[]string](size, ttl)
		}
	}
}

// New creates a Lookup.
func New(opts ...Option) *Lookup {
	l := &Lookup{runner: ExecRunner{}, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Section runs app with args and returns the leading token of each line in
// the block below header. Any failure yields an empty list.
func (l *Lookup) Section(ctx context.Context, app string, args []string, header string) []string {
	key := app + "\x00" + strings.Join(args, "\x00") + "\x00" + header
	if l.cache != nil {
		words, ok := l.cache.Get(key)
		l.logStats(app)
		if ok {
			return words
		}
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		return l.discover(ctx, app, args, header)
	})
	if err != nil {
		logger.Debug("vocabulary lookup failed", "app", app, "error", err)
		return nil
	}

	words := v.([]string)
	if l.cache != nil {
		l.cache.Set(key, words)
	}
	return words
}

// CacheStats reports the section cache counters. It is zero without
// WithCache.
func (l *Lookup) CacheStats() cache.Stats {
	if l.cache == nil {
		return cache.Stats{}
	}
	return l.cache.Stats()
}

func (l *Lookup) logStats(app string) {
	st := l.cache.Stats()
	logger.Debug("vocabulary cache",
		"app", app,
		"hits", st.Hits,
		"misses", st.Misses,
		"size", st.Size,
		"hit_rate", st.HitRate(),
	)
}

func (l *Lookup) discover(ctx context.Context, app string, args []string, header string) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	out, err := l.runner.Output(ctx, app, args...)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", app, err)
	}
	if !utf8.Valid(out) {
		return nil, fmt.Errorf("run %s: output is not valid UTF-8", app)
	}
	return ParseSection(string(out), header)
}

// ParseSection finds the first line starting with header and returns the
// first whitespace-separated token of every following line up to the first
// blank one.
func ParseSection(text, header string) ([]string, error) {
	sc := bufio.NewScanner(strings.NewReader(text))
	found := false
	var words []string
	for sc.Scan() {
		line := sc.Text()
		if !found {
			found = strings.HasPrefix(strings.TrimSpace(line), header)
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			break
		}
		words = append(words, fields[0])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan help output: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrNoSection, header)
	}
	return words, nil
}

// Static is a Source backed by a fixed table, keyed by app name.
type Static map[string][]string

// Section returns the words registered for app.
func (s Static) Section(_ context.Context, app string, _ []string, _ string) []string {
	return s[app]
}
