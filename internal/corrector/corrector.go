// Package corrector runs every rule against a failed command and merges
// their suggestions into one ranked list.
package corrector

import (
	"context"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/logger"
	"github.com/luizvbo/ohcrab/internal/middleware"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/shell"
)

const releaseTimeout = time.Second

// Corrector dispatches a failed command to a fixed set of rules.
type Corrector struct {
	rules   []rule.Rule
	workers int
	log     *logger.Logger
}

// Option configures a Corrector.
type Option func(*Corrector)

// WithWorkers evaluates rules on up to n goroutines. n <= 1 keeps evaluation
// serial.
func WithWorkers(n int) Option {
	return func(c *Corrector) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger replaces the package logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Corrector) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Corrector over rules. The slice is copied; later changes to
// it are not seen.
func New(rules []rule.Rule, opts ...Option) *Corrector {
	c := &Corrector{
		rules:   append([]rule.Rule(nil), rules...),
		workers: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get().With("corrector")
	}
	return c
}

// Rules returns a copy of the registry the Corrector runs.
func (c *Corrector) Rules() []rule.Rule {
	return append([]rule.Rule(nil), c.rules...)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dispatch
// ──────────────────────────────────────────────────────────────────────────────

// Corrected returns the suggestions for cmd, best first. An empty result
// means no rule matched. Cancelling ctx stops further rules from being
// started; whatever finished is still returned in order.
func (c *Corrector) Corrected(ctx context.Context, cmd *command.Command, sh shell.Shell) []rule.CorrectedCommand {
	if cmd == nil || len(c.rules) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var slots [][]rule.CorrectedCommand
	if c.workers > 1 && len(c.rules) > 1 {
		slots = c.evaluateConcurrent(ctx, cmd, sh)
	} else {
		slots = c.evaluateSerial(ctx, cmd, sh)
	}

	var all []rule.CorrectedCommand
	for _, s := range slots {
		all = append(all, s...)
	}
	out := Organize(all)
	c.log.Debug("correction finished", "script", cmd.Script(), "candidates", len(all), "suggestions", len(out))
	return out
}

func (c *Corrector) evaluateSerial(ctx context.Context, cmd *command.Command, sh shell.Shell) [][]rule.CorrectedCommand {
	slots := make([][]rule.CorrectedCommand, len(c.rules))
	for i, r := range c.rules {
		if ctx.Err() != nil {
			c.log.Debug("correction cancelled", "evaluated", i, "rules", len(c.rules))
			break
		}
		slots[i] = c.evaluate(r, cmd, sh)
	}
	return slots
}

// evaluateConcurrent fans rules out over an ants pool. Every rule writes to
// its own slot so the merged order does not depend on scheduling.
func (c *Corrector) evaluateConcurrent(ctx context.Context, cmd *command.Command, sh shell.Shell) [][]rule.CorrectedCommand {
	slots := make([][]rule.CorrectedCommand, len(c.rules))

	pool, err := ants.NewPool(min(c.workers, len(c.rules)),
		ants.WithPanicHandler(func(p any) {
			c.workerPanicked(p, debug.Stack())
		}),
	)
	if err != nil {
		c.log.Warn("worker pool unavailable, evaluating serially", "error", err)
		return c.evaluateSerial(ctx, cmd, sh)
	}
	defer func() {
		if err := pool.ReleaseTimeout(releaseTimeout); err != nil {
			c.log.Debug("worker pool release timed out", "error", err)
		}
	}()

	var wg sync.WaitGroup
	for i, r := range c.rules {
		if ctx.Err() != nil {
			c.log.Debug("correction cancelled", "scheduled", i, "rules", len(c.rules))
			break
		}
		i, r := i, r
		wg.Add(1)
		task := func() {
			defer wg.Done()
			c.contain(func() { slots[i] = c.evaluate(r, cmd, sh) })
		}
		if err := pool.Submit(task); err != nil {
			c.log.Debug("submit failed, evaluating inline", "rule", r.Name(), "error", err)
			task()
		}
	}
	wg.Wait()
	return slots
}

// contain runs fn so that a panic costs only that rule's slot.
func (c *Corrector) contain(fn func()) {
	middleware.RecoverWith(fn, c.workerPanicked)
}

func (c *Corrector) workerPanicked(recovered any, stack []byte) {
	c.log.Error("rule worker panicked", "panic", recovered)
	middleware.DefaultRecovery(recovered, stack)
}

func (c *Corrector) evaluate(r rule.Rule, cmd *command.Command, sh shell.Shell) []rule.CorrectedCommand {
	if !r.IsMatch(cmd, sh) {
		return nil
	}
	out := r.Candidates(cmd, sh)
	c.log.Debug("rule matched", "rule", r.Name(), "candidates", len(out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Ordering
// ──────────────────────────────────────────────────────────────────────────────

// Organize stable-sorts suggestions by ascending priority and drops an entry
// when its script equals the one right before it. Only neighbours are
// compared: equal scripts separated by another entry are both kept.
func Organize(cands []rule.CorrectedCommand) []rule.CorrectedCommand {
	if len(cands) == 0 {
		return nil
	}
	sorted := append([]rule.CorrectedCommand(nil), cands...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	out := sorted[:1]
	for _, cc := range sorted[1:] {
		if cc.SameScript(out[len(out)-1]) {
			continue
		}
		out = append(out, cc)
	}
	return out
}
