package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"pobsd/game"
)

// Store brand colours as 0xRRGGBB.
const (
	SteamColor   = 0x66c0f4
	GogColor     = 0xb44bd7
	UnknownColor = 0xaaaaaa
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Padding(0, 1)
	FooterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)
	SelectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("8")).
			Bold(true)
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Width(9)
	OKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Colorize applies the given 0xRRGGBB color to the text.
func Colorize(text string, color int) string {
	hexColor := fmt.Sprintf("#%06x", color)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render(text)
}

// StoreColor returns the colour a store kind is rendered with.
func StoreColor(s game.Store) int {
	switch s {
	case game.StoreSteam:
		return SteamColor
	case game.StoreGog:
		return GogColor
	default:
		return UnknownColor
	}
}

// StoreBadge renders a store link as "[Kind] url", with the Steam app id
// appended when there is one.
func StoreBadge(link game.StoreLink) string {
	badge := Colorize("["+link.Store.String()+"]", StoreColor(link.Store))
	if id, ok := link.ID(); ok {
		return fmt.Sprintf("%s %s (app %d)", badge, link.URL, id)
	}
	return badge + " " + link.URL
}
