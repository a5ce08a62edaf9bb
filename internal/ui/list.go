package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/pseudology/internal/archive"
	"github.com/desertthunder/pseudology/internal/models"
)

var (
	_ list.Item = reviewItem{}
	_ list.Item = artistItem{}
	_ list.Item = rankItem{}
)

// reviewItem wraps [models.Review] to implement [list.Item].
type reviewItem struct {
	review models.Review
	label  string
	indent bool
}

func (i reviewItem) FilterValue() string { return i.review.Artist + " " + i.review.Title }
func (i reviewItem) Title() string {
	title := fmt.Sprintf("%s %s", styles.As("■", styles.Accent(i.review.Color)), i.review.Title)
	if i.indent {
		return "   " + title
	}
	return title
}
func (i reviewItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.review.Artist, i.review.DateString())
	if i.label != "" {
		desc = fmt.Sprintf("%s • %s", i.label, desc)
	}
	if i.indent {
		return "   " + desc
	}
	return desc
}

// artistItem wraps [archive.ArtistGroup] to implement [list.Item].
type artistItem struct {
	group    archive.ArtistGroup
	initial  string
	expanded bool
}

func (i artistItem) FilterValue() string { return i.group.Name }
func (i artistItem) Title() string {
	marker := "▸"
	if i.expanded {
		marker = "▾"
	}
	return fmt.Sprintf("%s %s", marker, i.group.Name)
}
func (i artistItem) Description() string {
	noun := "reviews"
	if len(i.group.Reviews) == 1 {
		noun = "review"
	}
	return fmt.Sprintf("[%s] %d %s", i.initial, len(i.group.Reviews), noun)
}

// rankItem wraps [models.MatchedRankItem] to implement [list.Item].
type rankItem struct {
	item models.MatchedRankItem
}

func (i rankItem) FilterValue() string { return i.item.Review.Title }
func (i rankItem) Title() string {
	return fmt.Sprintf("%2d. %s", i.item.Rank, i.item.Review.Title)
}
func (i rankItem) Description() string {
	desc := "    " + i.item.Review.Artist
	if i.item.IsFallback {
		desc += " • not yet reviewed"
	}
	return desc
}

// homeItems lists the newest reviews followed by the revealed pick-ups.
func homeItems(recent, pickups []models.Review) []list.Item {
	items := make([]list.Item, 0, len(recent)+len(pickups))
	for _, r := range recent {
		items = append(items, reviewItem{review: r, label: "New"})
	}
	for _, r := range pickups {
		items = append(items, reviewItem{review: r, label: "Pick-up"})
	}
	return items
}

func reviewItems(reviews []models.Review) []list.Item {
	items := make([]list.Item, len(reviews))
	for i, r := range reviews {
		items[i] = reviewItem{review: r}
	}
	return items
}

// libraryItems flattens the index into artist rows, with the expanded artist's reviews beneath it.
func libraryItems(sections []archive.Section, expanded string) []list.Item {
	items := []list.Item{}
	for _, s := range sections {
		for _, g := range s.Artists {
			open := strings.EqualFold(g.Name, expanded) && expanded != ""
			items = append(items, artistItem{group: g, initial: s.Initial, expanded: open})
			if !open {
				continue
			}
			for _, r := range g.Reviews {
				items = append(items, reviewItem{review: r, indent: true})
			}
		}
	}
	return items
}

func rankItems(ranking archive.Ranking) []list.Item {
	items := make([]list.Item, len(ranking.Items))
	for i, item := range ranking.Items {
		items[i] = rankItem{item: item}
	}
	return items
}
