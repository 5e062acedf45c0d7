package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zedbee/gateway-wizard/internal/version"
)

// Application branding constants
const (
	AppName   = "ZEDBEE GATEWAY SETUP"
	GitHubURL = "github.com/zedbee/gateway-wizard"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 72
	MaxContentWidth  = 110
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#00A5CF") // Teal
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#00A5CF") // Teal (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(HighlightColor).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(1, 0)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	TabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(SubtleColor)

	ActiveTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(HighlightColor).
			Bold(true).
			Underline(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(0, 1)
)

// RenderHeader renders the application banner with version.
func RenderHeader(width int) string {
	title := TitleStyle.Render(AppName)
	subtitle := SubtitleStyle.Render("v" + AppVersion() + "  " + GitHubURL)
	header := lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Left, header)
	}
	return header
}
