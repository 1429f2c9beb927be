// Package ui renders suggestions and rule listings for the terminal
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color definitions for consistent theming
var (
	ColorGreen  = lipgloss.Color("#10B981")
	ColorRed    = lipgloss.Color("#EF4444")
	ColorYellow = lipgloss.Color("#F59E0B")
	ColorCyan   = lipgloss.Color("#06B6D4")
	ColorGray   = lipgloss.Color("#6B7280")
	ColorViolet = lipgloss.Color("#8B5CF6")
)

// Styles holds the styles a Renderer draws with. They are bound to the
// renderer's writer so color is dropped when it is not a terminal.
type Styles struct {
	Title   lipgloss.Style
	Index   lipgloss.Style
	Script  lipgloss.Style
	Rule    lipgloss.Style
	Action  lipgloss.Style
	Muted   lipgloss.Style
	Enabled lipgloss.Style
	Off     lipgloss.Style
}

// NewStyles builds the palette on r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(ColorViolet),
		Index:   r.NewStyle().Foreground(ColorGray),
		Script:  r.NewStyle().Bold(true).Foreground(ColorGreen),
		Rule:    r.NewStyle().Foreground(ColorCyan),
		Action:  r.NewStyle().Foreground(ColorYellow),
		Muted:   r.NewStyle().Foreground(ColorGray),
		Enabled: r.NewStyle().Foreground(ColorGreen),
		Off:     r.NewStyle().Foreground(ColorRed),
	}
}

// Green returns a green-colored string
func Green(s string) string {
	return lipgloss.NewStyle().Foreground(ColorGreen).Render(s)
}

// Red returns a red-colored string
func Red(s string) string {
	return lipgloss.NewStyle().Foreground(ColorRed).Render(s)
}

// Yellow returns a yellow-colored string
func Yellow(s string) string {
	return lipgloss.NewStyle().Foreground(ColorYellow).Render(s)
}

// Cyan returns a cyan-colored string
func Cyan(s string) string {
	return lipgloss.NewStyle().Foreground(ColorCyan).Render(s)
}

// HiBlack returns a gray string
func HiBlack(s string) string {
	return lipgloss.NewStyle().Foreground(ColorGray).Render(s)
}

// Title returns a bold violet string
func Title(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorViolet).Render(s)
}
