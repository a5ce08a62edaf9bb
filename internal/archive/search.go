package archive

import (
	"fmt"
	"strings"

	"github.com/desertthunder/pseudology/internal/models"
	"github.com/desertthunder/pseudology/internal/shared"
)

// Mode selects which review fields a search inspects.
type Mode string

const (
	ModeAll    Mode = "all"
	ModeArtist Mode = "artist"
	ModeTitle  Mode = "title"
)

// Modes lists the search modes in the order the UI cycles through them.
var Modes = []Mode{ModeAll, ModeArtist, ModeTitle}

// ParseMode converts a name into a [Mode]; an empty name means [ModeAll].
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeArtist:
		return ModeArtist, nil
	case ModeTitle:
		return ModeTitle, nil
	default:
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidMode, name)
	}
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModeAll
}

// Search returns the reviews whose fields contain query, case-insensitively, in collection order.
//
// An empty query matches nothing.
func Search(reviews []models.Review, query string, mode Mode) []models.Review {
	out := []models.Review{}
	if query == "" {
		return out
	}

	needle := strings.ToLower(query)
	for _, r := range reviews {
		if matches(r, needle, mode) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.Review, needle string, mode Mode) bool {
	artist := strings.Contains(strings.ToLower(r.Artist), needle)
	title := strings.Contains(strings.ToLower(r.Title), needle)

	switch mode {
	case ModeArtist:
		return artist
	case ModeTitle:
		return title
	default:
		return artist || title || strings.Contains(strings.ToLower(r.Body), needle)
	}
}
