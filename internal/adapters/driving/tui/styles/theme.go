// Package styles provides the colour theme and lipgloss styles for the
// chat interface.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette of the chat interface. Primary colours the
// user's side of the conversation, Secondary the assistant's.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
}

// DefaultTheme is the built-in palette, based on Catppuccin Mocha with
// blue for the user and teal for the assistant.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#89B4FA"),
		Secondary:  lipgloss.Color("#94E2D5"),
		Background: lipgloss.Color("#1E1E2E"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
	}
}

// Styles holds the pre-configured lipgloss styles the chat views render
// with.
type Styles struct {
	theme *Theme

	// Conversation text.
	UserLabel lipgloss.Style // the user's speaker label
	BotLabel  lipgloss.Style // the assistant's speaker label
	SourceRef lipgloss.Style // answer citations (file, page)
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style

	// Chrome.
	Title      lipgloss.Style // header line
	Selected   lipgloss.Style // highlighted rating menu item
	InputField lipgloss.Style // question input area
	StatusBar  lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles builds the render styles for a palette. A nil theme means
// DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		BotLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		SourceRef: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Muted),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles builds styles over the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme exposes the palette behind the styles, for components that
// colour text themselves.
func (s *Styles) Theme() *Theme {
	return s.theme
}
