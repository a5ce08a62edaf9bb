package archive

import (
	"hash/fnv"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/desertthunder/pseudology/internal/models"
	"github.com/desertthunder/pseudology/internal/shared"
)

// Ranking is one year's best-of list bound to the archive.
type Ranking struct {
	Year     string                   `json:"year"`
	Overview string                   `json:"overview"`
	Items    []models.MatchedRankItem `json:"items"`
}

// Match binds the ranked entries of year to reviews, in ascending rank order.
//
// Entries without a matching review get a placeholder flagged IsFallback. When several reviews
// match, [preferred] picks one; ties it cannot break keep collection order.
func Match(entries []models.RankEntry, reviews []models.Review, year string) Ranking {
	index := map[string][]models.Review{}
	for _, r := range reviews {
		key := shared.NormalizeKey(r.Artist, r.Title)
		index[key] = append(index[key], r)
	}

	ranked := []models.RankEntry{}
	for _, e := range entries {
		if e.Year == year && !e.IsOverview() {
			ranked = append(ranked, e)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Rank < ranked[j].Rank })

	items := make([]models.MatchedRankItem, 0, len(ranked))
	for _, e := range ranked {
		candidates := index[shared.NormalizeKey(e.Artist, e.Title)]
		if len(candidates) == 0 {
			items = append(items, models.MatchedRankItem{Rank: e.Rank, Review: fallbackReview(e), IsFallback: true})
			continue
		}
		items = append(items, models.MatchedRankItem{Rank: e.Rank, Review: BestCandidate(candidates)})
	}

	return Ranking{Year: year, Overview: Overview(entries, year), Items: items}
}

// BestCandidate returns the most preferred of a non-empty candidate list.
func BestCandidate(candidates []models.Review) models.Review {
	sorted := make([]models.Review, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return preferred(sorted[i], sorted[j]) })
	return sorted[0]
}

// preferred orders candidates: dated before undated, newer before older, longer body first.
func preferred(a, b models.Review) bool {
	switch {
	case a.IsDated() && !b.IsDated():
		return true
	case !a.IsDated() && b.IsDated():
		return false
	case a.IsDated() && b.IsDated() && !a.Date.Equal(*b.Date):
		return a.Date.After(*b.Date)
	default:
		return utf8.RuneCountInString(a.Body) > utf8.RuneCountInString(b.Body)
	}
}

func fallbackReview(e models.RankEntry) models.Review {
	return models.Review{
		ID:         FallbackID(e.Year, e.Rank),
		Artist:     models.UpperArtist(e.Artist),
		Title:      e.Title,
		Body:       models.NotYetReviewed,
		Color:      models.NeutralColor,
		Unreviewed: true,
	}
}

// FallbackID derives a stable placeholder id from year and rank.
//
// The id is negative so it never collides with an ingested review.
func FallbackID(year string, rank int) int {
	base, err := strconv.Atoi(year)
	if err != nil || base < 0 {
		h := fnv.New32a()
		h.Write([]byte(year))
		base = int(h.Sum32() % 1_000_000)
	}
	return -(base*1000 + rank)
}

// Overview returns the commentary of the year's rank-0 entry, or "".
func Overview(entries []models.RankEntry, year string) string {
	for _, e := range entries {
		if e.Year == year && e.IsOverview() {
			return e.Comment
		}
	}
	return ""
}

// Years lists the distinct ranking years, most recent first.
//
// Numeric years sort numerically; anything else follows them in descending lexical order.
func Years(entries []models.RankEntry) []string {
	seen := map[string]bool{}
	years := []string{}
	for _, e := range entries {
		if !seen[e.Year] {
			seen[e.Year] = true
			years = append(years, e.Year)
		}
	}

	sort.Slice(years, func(i, j int) bool {
		a, errA := strconv.Atoi(years[i])
		b, errB := strconv.Atoi(years[j])
		switch {
		case errA == nil && errB == nil:
			return a > b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return years[i] > years[j]
		}
	})

	return years
}

// LatestYear returns the default ranking year, or "" when there is no ranking data.
func LatestYear(entries []models.RankEntry) string {
	years := Years(entries)
	if len(years) == 0 {
		return ""
	}
	return years[0]
}
