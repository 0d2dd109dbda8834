package viewer

import "github.com/charmbracelet/lipgloss"

const (
	colorForeground = lipgloss.Color("#E4E4E4")
	colorDim        = lipgloss.Color("#6C6C6C")
	colorAccent     = lipgloss.Color("#AF87FF")
	colorSegFull    = lipgloss.Color("#FFFFFF")
	colorSegEmpty   = lipgloss.Color("#3A3A3A")
)

// Styles groups the lipgloss styles of the viewer so tests can render
// with defaults and themes can override them in one place.
type Styles struct {
	Header   lipgloss.Style
	Handle   lipgloss.Style
	Media    lipgloss.Style
	Caption  lipgloss.Style
	Tag      lipgloss.Style
	Paused   lipgloss.Style
	Help     lipgloss.Style
	SegFull  lipgloss.Style
	SegEmpty lipgloss.Style
	Empty    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Foreground(colorForeground).Bold(true),
		Handle:   lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Media:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(1, 2),
		Caption:  lipgloss.NewStyle().Foreground(colorForeground).Italic(true),
		Tag:      lipgloss.NewStyle().Foreground(colorAccent),
		Paused:   lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Help:     lipgloss.NewStyle().Foreground(colorDim),
		SegFull:  lipgloss.NewStyle().Foreground(colorSegFull),
		SegEmpty: lipgloss.NewStyle().Foreground(colorSegEmpty),
		Empty:    lipgloss.NewStyle().Foreground(colorDim).Padding(2, 4),
	}
}
