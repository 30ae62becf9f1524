// Package styles provides the colour palette and lipgloss styles of the chat TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the chat colour palette.
type Theme struct {
	// Accent colours the title and the assistant's turns.
	Accent lipgloss.Color

	// Speaker colours the user's turns and the model name.
	Speaker lipgloss.Color

	// Text is the colour of answers and messages.
	Text lipgloss.Color

	// Muted is for hints, placeholders and retrieved context.
	Muted lipgloss.Color

	// Error colours failed requests.
	Error lipgloss.Color

	// Border outlines the input box and the context gutter.
	Border lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.Color("#7C3AED"),
		Speaker: lipgloss.Color("#06B6D4"),
		Text:    lipgloss.Color("#CDD6F4"),
		Muted:   lipgloss.Color("#6C7086"),
		Error:   lipgloss.Color("#F38BA8"),
		Border:  lipgloss.Color("#45475A"),
		Bar:     lipgloss.Color("#181825"),
	}
}

// Styles holds the styles shared by the chat components.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// User and Assistant label transcript turns.
	User      lipgloss.Style
	Assistant lipgloss.Style

	// Context renders retrieved passages behind a left gutter.
	Context lipgloss.Style
}

// NewStyles builds styles from theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Speaker),
		Normal:   lipgloss.NewStyle().Foreground(theme.Text),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Error:    lipgloss.NewStyle().Foreground(theme.Error),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		User:      lipgloss.NewStyle().Bold(true).Foreground(theme.Speaker),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),

		Context: lipgloss.NewStyle().
			Foreground(theme.Muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(theme.Border).
			PaddingLeft(1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette behind these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
