package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

var _ Painter = (*Palette)(nil)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title     lipgloss.Style
	ok        lipgloss.Style
	err       lipgloss.Style
	warn      lipgloss.Style
	help      lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	card      lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:     NewBold(t).MarginBottom(1),
		ok:        NewBold(s),
		err:       NewBold(e),
		warn:      NewStyle(w),
		help:      NewEm(h),
		tab:       NewStyle(h).Padding(0, 1),
		activeTab: NewBold("#FFFFFF").Background(lipgloss.Color(t)).Padding(0, 1),
		card:      lipgloss.NewStyle().Padding(1, 2).Foreground(lipgloss.Color("#FFFFFF")),
	}
}

// On renders s on a background of c.
func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

// As renders s in c.
func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

// Card returns the card style tinted with a review's hex color.
//
// Colors that cannot be parsed fall back to the neutral card background.
func (p *Palette) Card(hex string) lipgloss.Style {
	c, err := colorful.Hex(hex)
	if err != nil {
		return p.card.Background(lipgloss.Color("#404040"))
	}
	return p.card.Background(lipgloss.Color(c.Hex()))
}

// Accent lightens a review color for use as foreground text on the default background.
func (p *Palette) Accent(hex string) lipgloss.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Color("#A0A0A0")
	}
	h, s, _ := c.Hsl()
	return lipgloss.Color(colorful.Hsl(h, s, 0.65).Hex())
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
