package tui

import "github.com/charmbracelet/lipgloss"

// StyleConfig holds all customizable colors for the chat UI.
type StyleConfig struct {
	Primary        lipgloss.Color
	Accent         lipgloss.Color
	DarkBackground lipgloss.Color
	CardBackground lipgloss.Color
	TextPrimary    lipgloss.Color
	TextSecondary  lipgloss.Color
	BorderColor    lipgloss.Color
	UserColor      lipgloss.Color
	AssistantColor lipgloss.Color
	PriceColor     lipgloss.Color
}

// DefaultStyles returns the default color palette.
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		Primary:        lipgloss.Color("#8AB4F8"),
		Accent:         lipgloss.Color("#4285F4"),
		DarkBackground: lipgloss.Color("#1E1E1E"),
		CardBackground: lipgloss.Color("#2D2D2D"),
		TextPrimary:    lipgloss.Color("#E8EAED"),
		TextSecondary:  lipgloss.Color("#9AA0A6"),
		BorderColor:    lipgloss.Color("#5F6368"),
		UserColor:      lipgloss.Color("#FBBC04"),
		AssistantColor: lipgloss.Color("#34A853"),
		PriceColor:     lipgloss.Color("#24C1E0"),
	}
}

// TitleStyle renders the header bar.
func (s *StyleConfig) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Primary).
		Bold(true).
		Padding(0, 1)
}

// HelpStyle renders the key hints under the input.
func (s *StyleConfig) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.TextSecondary).
		Padding(0, 1)
}

// SpeakerStyle renders a transcript speaker label.
func (s *StyleConfig) SpeakerStyle(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(c).
		Bold(true)
}

// ViewportStyle frames the transcript.
func (s *StyleConfig) ViewportStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.BorderColor)
}

// CardStyle frames one vehicle card row.
func (s *StyleConfig) CardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(s.CardBackground).
		Foreground(s.TextPrimary).
		Padding(0, 1)
}
