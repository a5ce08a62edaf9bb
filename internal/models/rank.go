package models

import (
	"strconv"
	"strings"
)

const (
	// NotYetReviewed is the body of a placeholder review for an unmatched ranking entry.
	NotYetReviewed = "This record has not been reviewed yet."
	// NeutralColor is the color of placeholder reviews.
	NeutralColor = "#404040"
)

// RankRow is one raw row from the annual ranking sheet.
type RankRow struct {
	Year    string `json:"year"`
	Rank    string `json:"rank"`
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Comment string `json:"comment,omitempty"`
}

// RankEntry is one validated row of an annual best-of list.
type RankEntry struct {
	Year    string `json:"year"`
	Rank    int    `json:"rank"`
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Comment string `json:"comment,omitempty"`
}

// IsOverview reports whether the entry carries the year's commentary rather than a placement.
func (e RankEntry) IsOverview() bool { return e.Rank == 0 }

// MatchedRankItem binds a rank to a real review or a placeholder.
type MatchedRankItem struct {
	Rank       int    `json:"rank"`
	Review     Review `json:"review"`
	IsFallback bool   `json:"is_fallback"`
}

// NewRankEntries validates raw rows, dropping any without a year or an integer rank >= 0.
//
// The second return value counts the dropped rows.
func NewRankEntries(rows []RankRow) ([]RankEntry, int) {
	entries := make([]RankEntry, 0, len(rows))
	dropped := 0

	for _, row := range rows {
		year := strings.TrimSpace(row.Year)
		rank, err := strconv.Atoi(strings.TrimSpace(row.Rank))
		if year == "" || err != nil || rank < 0 {
			dropped++
			continue
		}

		entries = append(entries, RankEntry{
			Year:    year,
			Rank:    rank,
			Artist:  strings.TrimSpace(row.Artist),
			Title:   strings.TrimSpace(row.Title),
			Comment: strings.TrimSpace(row.Comment),
		})
	}

	return entries, dropped
}
