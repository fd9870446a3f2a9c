package printer

import "github.com/charmbracelet/lipgloss"

// Colors adapt to light and dark terminal backgrounds
var (
	SuccessColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD54F"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#17A2B8", Dark: "#4DD0E1"}
	DryRunColor  = lipgloss.AdaptiveColor{Light: "#6F42C1", Dark: "#B794F6"}
	HeadingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
)

// styles groups the lipgloss styles bound to one renderer
type styles struct {
	header  lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	dryRun  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:  r.NewStyle().Foreground(HeadingColor).Bold(true),
		info:    r.NewStyle().Foreground(InfoColor),
		success: r.NewStyle().Foreground(SuccessColor).Bold(true),
		warning: r.NewStyle().Foreground(WarningColor).Bold(true),
		err:     r.NewStyle().Foreground(ErrorColor).Bold(true),
		dryRun:  r.NewStyle().Foreground(DryRunColor).Italic(true),
	}
}
