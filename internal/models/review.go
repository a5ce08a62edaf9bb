package models

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NoDate is displayed in place of a missing review date.
const NoDate = "No Date"

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	time.RFC3339,
}

// ReviewRow is one raw row from the review sheet.
type ReviewRow struct {
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Date    string `json:"date,omitempty"`
	ImageID string `json:"image_id,omitempty"`
}

// Review is one archived write-up.
type Review struct {
	ID     int        `json:"id"`
	Artist string     `json:"artist"`
	Title  string     `json:"title"`
	Body   string     `json:"body"`
	Date   *time.Time `json:"date,omitempty"`
	Image  string     `json:"image,omitempty"`
	Color  string     `json:"color"`

	// Unreviewed marks a ranking placeholder standing in for a missing review.
	Unreviewed bool `json:"unreviewed,omitempty"`
}

// ImageResolver turns a sheet image id into a URL, returning "" for no image.
type ImageResolver func(imageID string) string

// HasImage reports whether the review has cover art.
func (r Review) HasImage() bool { return r.Image != "" }

// IsDated reports whether the review carries a date.
func (r Review) IsDated() bool { return r.Date != nil }

// DateString formats the date as YYYY-MM-DD or [NoDate].
func (r Review) DateString() string {
	if r.Date == nil {
		return NoDate
	}
	return r.Date.Format("2006-01-02")
}

// NewCollection ingests raw rows into the ordered review collection.
//
// IDs follow ingestion order starting at 1. The result is sorted by date descending, undated
// reviews after all dated ones, stable otherwise.
func NewCollection(rows []ReviewRow, resolve ImageResolver) []Review {
	reviews := make([]Review, 0, len(rows))

	for i, row := range rows {
		id := i + 1
		image := ""
		if resolve != nil && strings.TrimSpace(row.ImageID) != "" {
			image = resolve(strings.TrimSpace(row.ImageID))
		}

		reviews = append(reviews, Review{
			ID:     id,
			Artist: UpperArtist(row.Artist),
			Title:  row.Title,
			Body:   row.Body,
			Date:   ParseDate(row.Date),
			Image:  image,
			Color:  ColorFor(id),
		})
	}

	SortByDate(reviews)
	return reviews
}

// UpperArtist renders an artist name the way the archive displays it.
func UpperArtist(name string) string {
	return cases.Upper(language.Und).String(name)
}

// SortByDate orders reviews newest first, undated last, preserving relative order on ties.
func SortByDate(reviews []Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		a, b := reviews[i].Date, reviews[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}

// ParseDate parses a sheet date, returning nil for empty or unrecognized values.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ColorFor derives the stable fallback color for a review id.
//
// Hues step by the golden angle so neighbouring ids get distinct colors.
func ColorFor(id int) string {
	hue := math.Mod(float64(id)*137.508, 360)
	return colorful.Hsl(hue, 0.70, 0.25).Hex()
}
