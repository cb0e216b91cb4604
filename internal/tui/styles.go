// Package tui is the terminal front end: a bubbletea program with the same
// five tabs as the web page.
package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	primary lipgloss.Color
	accent  lipgloss.Color
	text    lipgloss.Color
	dim     lipgloss.Color
	border  lipgloss.Color
	error   lipgloss.Color
}

var (
	lightPalette = palette{
		primary: lipgloss.Color("#2563EB"),
		accent:  lipgloss.Color("#059669"),
		text:    lipgloss.Color("#111827"),
		dim:     lipgloss.Color("#6B7280"),
		border:  lipgloss.Color("#D1D5DB"),
		error:   lipgloss.Color("#DC2626"),
	}
	darkPalette = palette{
		primary: lipgloss.Color("#60A5FA"),
		accent:  lipgloss.Color("#34D399"),
		text:    lipgloss.Color("#F3F4F6"),
		dim:     lipgloss.Color("#9CA3AF"),
		border:  lipgloss.Color("#374151"),
		error:   lipgloss.Color("#F87171"),
	}
)

// styles is rebuilt whenever dark mode flips.
type styles struct {
	title       lipgloss.Style
	activeTab   lipgloss.Style
	tab         lipgloss.Style
	heading     lipgloss.Style
	text        lipgloss.Style
	dim         lipgloss.Style
	selected    lipgloss.Style
	badge       lipgloss.Style
	card        lipgloss.Style
	highlighted lipgloss.Style
	userLabel   lipgloss.Style
	tutorLabel  lipgloss.Style
	input       lipgloss.Style
	status      lipgloss.Style
	err         lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1).
		Width(28)

	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		activeTab:   lipgloss.NewStyle().Bold(true).Foreground(p.primary).Underline(true).Padding(0, 1),
		tab:         lipgloss.NewStyle().Foreground(p.dim).Padding(0, 1),
		heading:     lipgloss.NewStyle().Bold(true).Foreground(p.text),
		text:        lipgloss.NewStyle().Foreground(p.text),
		dim:         lipgloss.NewStyle().Foreground(p.dim),
		selected:    lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		badge:       lipgloss.NewStyle().Foreground(p.accent).Italic(true),
		card:        card,
		highlighted: card.BorderForeground(p.primary),
		userLabel:   lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		tutorLabel:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		status: lipgloss.NewStyle().Foreground(p.dim),
		err:    lipgloss.NewStyle().Foreground(p.error),
	}
}
