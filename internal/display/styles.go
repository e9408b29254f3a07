package display

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode controls styling of the output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

var (
	titleColor  = lipgloss.Color("#39D353") // Bright green
	linkColor   = lipgloss.Color("#58A6FF") // Light blue
	dateColor   = lipgloss.Color("#A371F7") // Light purple
	accentColor = lipgloss.Color("#2DA44E") // Green
	dimColor    = lipgloss.Color("#6E7681") // Gray
	errorColor  = lipgloss.Color("#CF222E") // Red
)

type styles struct {
	enabled bool
	title   lipgloss.Style
	link    lipgloss.Style
	date    lipgloss.Style
	header  lipgloss.Style
	status  lipgloss.Style
	err     lipgloss.Style
}

func newStyles(w io.Writer, mode ColorMode) styles {
	if !useColor(w, mode) {
		return styles{}
	}

	r := lipgloss.NewRenderer(w)
	if mode == ColorAlways {
		r.SetColorProfile(termenv.ANSI256)
	}

	return styles{
		enabled: true,
		title:   r.NewStyle().Foreground(titleColor).Bold(true),
		link:    r.NewStyle().Foreground(linkColor).Underline(true),
		date:    r.NewStyle().Foreground(dateColor).Italic(true),
		header:  r.NewStyle().Foreground(accentColor).Bold(true),
		status:  r.NewStyle().Foreground(dimColor),
		err:     r.NewStyle().Foreground(errorColor).Bold(true),
	}
}

// render applies st when styling is enabled; otherwise s is returned as is.
func (s styles) render(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

func useColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
