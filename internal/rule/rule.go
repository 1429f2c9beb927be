// Package rule defines the descriptor every correction heuristic is built
// from and the suggestion values the pipeline produces.
package rule

import (
	"strings"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/logger"
	"github.com/luizvbo/ohcrab/internal/middleware"
	"github.com/luizvbo/ohcrab/internal/shell"
)

// DefaultPriority is used when a rule does not set one. Lower sorts first.
const DefaultPriority = 1000

// Matcher decides whether a rule applies to a failed command.
type Matcher func(cmd *command.Command, sh shell.Shell) bool

// Generator produces replacement scripts for a matched command, best first.
type Generator func(cmd *command.Command, sh shell.Shell) ([]string, error)

// EffectFunc derives the side-effect attached to a rule's suggestions.
type EffectFunc func(cmd *command.Command) Action

// Rule pairs a predicate with a candidate generator. Rules are values: the
// With* methods return modified copies.
type Rule struct {
	name           string
	enabled        bool
	priority       int
	requiresOutput bool
	match          Matcher
	generate       Generator
	effect         EffectFunc
}

// Option configures a Rule at construction.
type Option func(*Rule)

// WithPriority sets the rule priority. Negative values are ignored.
func WithPriority(p int) Option {
	return func(r *Rule) {
		if p >= 0 {
			r.priority = p
		}
	}
}

// EnabledByDefault controls whether the rule runs without being opted in.
func EnabledByDefault(enabled bool) Option {
	return func(r *Rule) {
		r.enabled = enabled
	}
}

// RequiresOutput controls whether the rule can match a command whose output
// was never captured.
func RequiresOutput(required bool) Option {
	return func(r *Rule) {
		r.requiresOutput = required
	}
}

// WithEffect attaches a side-effect to every suggestion of the rule.
func WithEffect(fn EffectFunc) Option {
	return func(r *Rule) {
		r.effect = fn
	}
}

// New builds a rule. Unset options take their defaults: enabled, priority
// 1000, output required, no side-effect.
func New(name string, match Matcher, generate Generator, opts ...Option) Rule {
	r := Rule{
		name:           name,
		enabled:        true,
		priority:       DefaultPriority,
		requiresOutput: true,
		match:          match,
		generate:       generate,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Name returns the unique rule name.
func (r Rule) Name() string { return r.name }

// Enabled reports whether the rule runs by default.
func (r Rule) Enabled() bool { return r.enabled }

// Priority returns the base priority.
func (r Rule) Priority() int { return r.priority }

// NeedsOutput reports whether the rule requires captured output.
func (r Rule) NeedsOutput() bool { return r.requiresOutput }

// HasEffect reports whether suggestions carry a side-effect.
func (r Rule) HasEffect() bool { return r.effect != nil }

// WithPriority returns a copy with a different priority.
func (r Rule) WithPriority(p int) Rule {
	if p >= 0 {
		r.priority = p
	}
	return r
}

// WithEnabled returns a copy with the enabled flag replaced.
func (r Rule) WithEnabled(enabled bool) Rule {
	r.enabled = enabled
	return r
}

// String implements fmt.Stringer.
func (r Rule) String() string { return r.name }

// IsMatch reports whether the rule applies. A rule that requires output
// never sees a command without it, and a panicking predicate counts as no
// match.
func (r Rule) IsMatch(cmd *command.Command, sh shell.Shell) bool {
	if r.match == nil || cmd == nil {
		return false
	}
	if r.requiresOutput && !cmd.HasOutput() {
		return false
	}

	matched, err := middleware.SafeCallWithResult(func() (bool, error) {
		return r.match(cmd, sh), nil
	})
	if err != nil {
		logger.Debug("rule predicate failed", "rule", r.name, "error", err)
		return false
	}
	return matched
}

// Candidates runs the generator and turns its output into suggestions. The
// i-th candidate (0-based) gets priority Priority()*(i+1). Generator errors
// and panics yield no suggestions.
func (r Rule) Candidates(cmd *command.Command, sh shell.Shell) []CorrectedCommand {
	if r.generate == nil || cmd == nil {
		return nil
	}

	scripts, err := middleware.SafeCallWithResult(func() ([]string, error) {
		return r.generate(cmd, sh)
	})
	if err != nil {
		logger.Debug("rule generator failed", "rule", r.name, "error", err)
		return nil
	}
	if len(scripts) == 0 {
		return nil
	}

	action := r.actionFor(cmd)
	out := make([]CorrectedCommand, 0, len(scripts))
	for i, script := range scripts {
		if strings.TrimSpace(script) == "" {
			continue
		}
		out = append(out, CorrectedCommand{
			Script:   script,
			Priority: r.priority * (i + 1),
			Rule:     r.name,
			Action:   action,
		})
	}
	return out
}

func (r Rule) actionFor(cmd *command.Command) Action {
	if r.effect == nil {
		return Action{}
	}
	action, err := middleware.SafeCallWithResult(func() (Action, error) {
		return r.effect(cmd), nil
	})
	if err != nil {
		logger.Debug("rule side-effect failed", "rule", r.name, "error", err)
		return Action{}
	}
	return action
}
