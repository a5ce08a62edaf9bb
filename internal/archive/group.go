package archive

import (
	"regexp"
	"sort"
	"strings"

	"github.com/desertthunder/pseudology/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// OtherSection holds artists whose sort key does not start with an ASCII letter.
const OtherSection = "#"

var articlePrefix = regexp.MustCompile(`(?i)^(a|the)\s+`)

// ArtistGroup is one artist and their reviews ordered by title.
type ArtistGroup struct {
	Name    string          `json:"name"`
	SortKey string          `json:"sort_key"`
	Reviews []models.Review `json:"reviews"`
}

// Section is one letter of the artist index.
type Section struct {
	Initial string        `json:"initial"`
	Artists []ArtistGroup `json:"artists"`
}

// SortKey strips one leading "a " or "the " article from an artist name.
func SortKey(name string) string {
	return strings.TrimSpace(articlePrefix.ReplaceAllString(strings.TrimSpace(name), ""))
}

// SectionKey returns the index letter for an artist name, or [OtherSection].
func SectionKey(name string) string {
	key := SortKey(name)
	if key == "" {
		return OtherSection
	}
	c := key[0]
	switch {
	case c >= 'A' && c <= 'Z':
		return string(c)
	case c >= 'a' && c <= 'z':
		return string(c - 'a' + 'A')
	default:
		return OtherSection
	}
}

// Group builds the artist index: sections ascending with [OtherSection] last, artists by sort key,
// reviews by title.
func Group(reviews []models.Review) []Section {
	col := collate.New(language.Und)

	byInitial := map[string]map[string][]models.Review{}
	for _, r := range reviews {
		initial := SectionKey(r.Artist)
		if byInitial[initial] == nil {
			byInitial[initial] = map[string][]models.Review{}
		}
		byInitial[initial][r.Artist] = append(byInitial[initial][r.Artist], r)
	}

	initials := make([]string, 0, len(byInitial))
	for initial := range byInitial {
		initials = append(initials, initial)
	}
	sort.Slice(initials, func(i, j int) bool {
		return lessInitial(initials[i], initials[j])
	})

	sections := make([]Section, 0, len(initials))
	for _, initial := range initials {
		artists := make([]ArtistGroup, 0, len(byInitial[initial]))
		for name, items := range byInitial[initial] {
			sorted := append([]models.Review(nil), items...)
			sort.SliceStable(sorted, func(i, j int) bool {
				return col.CompareString(sorted[i].Title, sorted[j].Title) < 0
			})
			artists = append(artists, ArtistGroup{Name: name, SortKey: SortKey(name), Reviews: sorted})
		}

		sort.Slice(artists, func(i, j int) bool {
			if c := col.CompareString(artists[i].SortKey, artists[j].SortKey); c != 0 {
				return c < 0
			}
			return artists[i].Name < artists[j].Name
		})

		sections = append(sections, Section{Initial: initial, Artists: artists})
	}

	return sections
}

func lessInitial(a, b string) bool {
	if a == OtherSection {
		return false
	}
	if b == OtherSection {
		return true
	}
	return a < b
}

// Initials lists the section letters in display order, for the index jump bar.
func Initials(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Initial
	}
	return out
}

// FindSection returns the section with the given initial.
func FindSection(sections []Section, initial string) (Section, bool) {
	for _, s := range sections {
		if strings.EqualFold(s.Initial, initial) {
			return s, true
		}
	}
	return Section{}, false
}

// Flatten returns every review of the index in display order.
func Flatten(sections []Section) []models.Review {
	var out []models.Review
	for _, s := range sections {
		for _, a := range s.Artists {
			out = append(out, a.Reviews...)
		}
	}
	return out
}
