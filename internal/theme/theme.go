package theme

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles describes the Lip Gloss styles used for feed lines and the builtin
// picker.
type Styles struct {
	SessionSymbol *lipgloss.Style
	SessionName   *lipgloss.Style
	WindowSymbol  *lipgloss.Style
	WindowName    *lipgloss.Style
	WindowPath    *lipgloss.Style
	Filler        *lipgloss.Style
	Dead          *lipgloss.Style

	Prompt       *lipgloss.Style
	Pointer      *lipgloss.Style
	SelectedItem *lipgloss.Style
	Info         *lipgloss.Style
}

// The feed is written to a pipe, so the renderer never sees a TTY and would
// otherwise fall back to the Ascii profile.
var (
	colorRenderer = newRenderer(termenv.TrueColor)
	plainRenderer = newRenderer(termenv.Ascii)

	defaultStyles = build(colorRenderer)
	plainStyles   = build(plainRenderer)
)

// Default returns the coloured style set.
func Default() *Styles {
	return &defaultStyles
}

// Plain returns styles that emit no escape sequences.
func Plain() *Styles {
	return &plainStyles
}

func newRenderer(profile termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return r
}

func build(r *lipgloss.Renderer) Styles {
	return Styles{
		SessionSymbol: ptr(r.NewStyle().Foreground(lipgloss.Color("5"))),
		SessionName:   ptr(r.NewStyle().Foreground(lipgloss.Color("5"))),
		WindowSymbol:  ptr(r.NewStyle().Foreground(lipgloss.Color("3"))),
		WindowName:    ptr(r.NewStyle().Foreground(lipgloss.Color("2"))),
		WindowPath:    ptr(r.NewStyle().Foreground(lipgloss.Color("4"))),
		Filler:        ptr(r.NewStyle().Foreground(lipgloss.Color("0"))),
		Dead:          ptr(r.NewStyle().Foreground(lipgloss.Color("#505050"))),

		Prompt:       ptr(r.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)),
		Pointer:      ptr(r.NewStyle().Foreground(lipgloss.Color("33"))),
		SelectedItem: ptr(r.NewStyle().Background(lipgloss.Color("238"))),
		Info:         ptr(r.NewStyle().Foreground(lipgloss.Color("241"))),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
