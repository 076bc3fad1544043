package repl

import "github.com/charmbracelet/lipgloss"

var (
	colorAssistant = lipgloss.AdaptiveColor{Light: "#6B21A8", Dark: "#D8A6FF"}
	colorError     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF6B6B"}
	colorMuted     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorUser      = lipgloss.AdaptiveColor{Light: "#0070F3", Dark: "#79C0FF"}
)

// styles binds the palette to one output's renderer, so colour is only
// emitted when that output supports it.
type styles struct {
	info   lipgloss.Style
	err    lipgloss.Style
	muted  lipgloss.Style
	prompt lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		info:   r.NewStyle().Foreground(colorAssistant),
		err:    r.NewStyle().Foreground(colorError).Bold(true),
		muted:  r.NewStyle().Foreground(colorMuted).Italic(true),
		prompt: r.NewStyle().Foreground(colorUser).Bold(true),
	}
}
