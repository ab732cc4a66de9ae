package ui

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Styles carries every lipgloss style the views share, derived from one
// catppuccin flavor so the whole app recolors from a single config knob.
type Styles struct {
	Title      lipgloss.Style
	Header     lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Help       lipgloss.Style
	Message    lipgloss.Style
	Error      lipgloss.Style
	Banner     lipgloss.Style

	Panel       lipgloss.Style
	ActivePanel lipgloss.Style

	OursLabel   lipgloss.Style
	TheirsLabel lipgloss.Style
	BaseLabel   lipgloss.Style
	Resolved    lipgloss.Style
	Unresolved  lipgloss.Style
}

func flavorByName(name string) catppuccin.Flavour {
	switch strings.ToLower(name) {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	default:
		return catppuccin.Mocha
	}
}

func newStyles(theme string) Styles {
	flavor := flavorByName(theme)

	title := lipgloss.Color(flavor.Mauve().Hex)
	text := lipgloss.Color(flavor.Overlay1().Hex)
	blue := lipgloss.Color(flavor.Blue().Hex)
	green := lipgloss.Color(flavor.Green().Hex)
	red := lipgloss.Color(flavor.Red().Hex)
	peach := lipgloss.Color(flavor.Peach().Hex)
	yellow := lipgloss.Color(flavor.Yellow().Hex)
	border := lipgloss.Color(flavor.Surface2().Hex)

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(title).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(blue).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(title).
			Bold(true),

		Unselected: lipgloss.NewStyle().
			Foreground(text),

		Help: lipgloss.NewStyle().
			Foreground(text),

		Message: lipgloss.NewStyle().
			Foreground(green).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(red).
			Bold(true),

		Banner: lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),

		ActivePanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(title).
			Padding(0, 1),

		OursLabel: lipgloss.NewStyle().
			Foreground(green).
			Bold(true),

		TheirsLabel: lipgloss.NewStyle().
			Foreground(red).
			Bold(true),

		BaseLabel: lipgloss.NewStyle().
			Foreground(text).
			Bold(true),

		Resolved: lipgloss.NewStyle().
			Foreground(green),

		Unresolved: lipgloss.NewStyle().
			Foreground(peach),
	}
}
