package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/pseudology/internal/models"
)

// cardMode decides how a review's header card is drawn.
type cardMode interface {
	render(r models.Review, width int) string
	isCardMode()
}

// imageCard is used for reviews with cover art: the cover cannot be drawn in the terminal, so the
// card shows its URL and the key to open it.
type imageCard struct{}

// textCard is used for reviews without cover art: artist and title on the review's color.
type textCard struct{}

// fallbackCard is used for ranking entries that have no review yet.
type fallbackCard struct{}

func (imageCard) isCardMode()    {}
func (textCard) isCardMode()     {}
func (fallbackCard) isCardMode() {}

// cardFor picks the card for r.
func cardFor(r models.Review) cardMode {
	switch {
	case r.Unreviewed:
		return fallbackCard{}
	case r.HasImage():
		return imageCard{}
	default:
		return textCard{}
	}
}

func (imageCard) render(r models.Review, width int) string {
	header := textCard{}.render(r, width)
	cover := styles.help.Render(fmt.Sprintf("cover: %s  (o to open)", r.Image))
	return lipgloss.JoinVertical(lipgloss.Left, header, cover)
}

func (textCard) render(r models.Review, width int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(r.Title),
		r.Artist,
		r.DateString(),
	)
	return styles.Card(r.Color).Width(cardWidth(width)).Render(body)
}

func (fallbackCard) render(r models.Review, width int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(r.Title),
		r.Artist,
		styles.warn.Render(models.NotYetReviewed),
	)
	return styles.Card(models.NeutralColor).Width(cardWidth(width)).Render(body)
}

func cardWidth(width int) int {
	if width <= 0 {
		return 40
	}
	return max(20, width-4)
}

// renderDetail draws the card and body of a review.
func renderDetail(r models.Review, width int) string {
	var b strings.Builder
	b.WriteString(cardFor(r).render(r, width))
	b.WriteString("\n\n")

	if !r.Unreviewed {
		text := lipgloss.NewStyle().Width(cardWidth(width)).Render(r.Body)
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}
