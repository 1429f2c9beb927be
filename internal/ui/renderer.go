package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/luizvbo/ohcrab/internal/rule"
)

const defaultWidth = 80

// RuleRow describes one registry entry for listings.
type RuleRow struct {
	Name           string `json:"name" yaml:"name"`
	Priority       int    `json:"priority" yaml:"priority"`
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	RequiresOutput bool   `json:"requires_output" yaml:"requires_output"`
	SideEffect     bool   `json:"side_effect" yaml:"side_effect"`
}

// RowFor describes r.
func RowFor(r rule.Rule) RuleRow {
	return RuleRow{
		Name:           r.Name(),
		Priority:       r.Priority(),
		Enabled:        r.Enabled(),
		RequiresOutput: r.NeedsOutput(),
		SideEffect:     r.HasEffect(),
	}
}

// Renderer writes human-readable output, adapting to whether w is a terminal.
type Renderer struct {
	w      io.Writer
	width  int
	tty    bool
	styles Styles
	title  cases.Caser
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth fixes the wrap width instead of asking the terminal.
func WithWidth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.width = n
		}
	}
}

// Decorated forces the numbered terminal layout on or off.
func Decorated(on bool) Option {
	return func(r *Renderer) { r.tty = on }
}

// NewRenderer creates a Renderer on w.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		w:     w,
		width: defaultWidth,
		title: cases.Title(language.English),
	}
	if f, ok := w.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		r.tty = true
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			r.width = width
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	r.styles = NewStyles(lipgloss.NewRenderer(w))
	return r
}

// Label turns an identifier such as "remove_lines" into "Remove Lines".
func (r *Renderer) Label(id string) string {
	return r.title.String(strings.ReplaceAll(id, "_", " "))
}

// Suggestions writes cands. Outside a terminal each script is printed alone
// on its line so the output can be consumed by a shell.
func (r *Renderer) Suggestions(cands []rule.CorrectedCommand) error {
	if !r.tty {
		for _, c := range cands {
			if _, err := fmt.Fprintln(r.w, c.Script); err != nil {
				return err
			}
		}
		return nil
	}

	if len(cands) == 0 {
		_, err := fmt.Fprintln(r.w, r.styles.Muted.Render("No fixes found."))
		return err
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render(r.Label("suggestions")))
	b.WriteString("\n")

	prefixWidth := len(strconv.Itoa(len(cands))) + 4
	avail := max(r.width-prefixWidth, 20)
	for i, c := range cands {
		index := fmt.Sprintf("%*d. ", prefixWidth-2, i+1)
		lines := strings.Split(wordwrap.String(c.Script, avail), "\n")

		b.WriteString(r.styles.Index.Render(index))
		b.WriteString(r.styles.Script.Render(lines[0]))
		b.WriteString("  ")
		b.WriteString(r.styles.Rule.Render(c.Rule))
		b.WriteString("\n")
		if len(lines) > 1 {
			rest := r.styles.Script.Render(strings.Join(lines[1:], "\n"))
			b.WriteString(indent.String(rest, uint(prefixWidth)))
			b.WriteString("\n")
		}
		if !c.Action.IsZero() {
			note := "then: " + c.Action.String()
			b.WriteString(indent.String(r.styles.Action.Render(note), uint(prefixWidth)))
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Rules writes a table of rows.
func (r *Renderer) Rules(rows []RuleRow) error {
	nameWidth := len("name")
	for _, row := range rows {
		nameWidth = max(nameWidth, len(row.Name))
	}
	nameWidth += 2

	var b strings.Builder
	header := padding.String(r.Label("name"), uint(nameWidth)) +
		padding.String(r.Label("priority"), 10) +
		padding.String(r.Label("enabled"), 9) +
		r.Label("needs output")
	b.WriteString(r.styles.Title.Render(header))
	b.WriteString("\n")

	for _, row := range rows {
		enabled := r.styles.Enabled.Render(padding.String("yes", 9))
		if !row.Enabled {
			enabled = r.styles.Off.Render(padding.String("no", 9))
		}
		output := "yes"
		if !row.RequiresOutput {
			output = "no"
		}
		if row.SideEffect {
			output += r.styles.Muted.Render("  (side effect)")
		}
		b.WriteString(r.styles.Rule.Render(padding.String(row.Name, uint(nameWidth))))
		b.WriteString(padding.String(strconv.Itoa(row.Priority), 10))
		b.WriteString(enabled)
		b.WriteString(output)
		b.WriteString("\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}
