// Package report renders plans and run reports for the terminal.
package report

import "github.com/charmbracelet/lipgloss"

// Theme colors (Catppuccin Mocha inspired).
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	colorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	colorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Overlay0
)

// styles holds the lipgloss styles used by the renderer.
type styles struct {
	Title    lipgloss.Style
	Category lipgloss.Style
	Applied  lipgloss.Style
	Skipped  lipgloss.Style
	Failed   lipgloss.Style
	Conflict lipgloss.Style
	Muted    lipgloss.Style
}

// defaultStyles returns the colored style set.
func defaultStyles() styles {
	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Category: lipgloss.NewStyle().Bold(true),
		Applied:  lipgloss.NewStyle().Foreground(colorSuccess),
		Skipped:  lipgloss.NewStyle().Foreground(colorMuted),
		Failed:   lipgloss.NewStyle().Foreground(colorError),
		Conflict: lipgloss.NewStyle().Foreground(colorWarning),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
	}
}

// plainStyles returns an uncolored style set for non-TTY output.
func plainStyles() styles {
	plain := lipgloss.NewStyle()
	return styles{
		Title:    plain,
		Category: plain,
		Applied:  plain,
		Skipped:  plain,
		Failed:   plain,
		Conflict: plain,
		Muted:    plain,
	}
}
