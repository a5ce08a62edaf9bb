package archive

import (
	"strings"

	"github.com/desertthunder/pseudology/internal/models"
)

// Related lists reviews connected to focal: first the artist's other reviews, then reviews whose
// title or body mention the artist. Each tier keeps collection order; focal is never included.
func Related(focal models.Review, reviews []models.Review) []models.Review {
	out := []models.Review{}
	seen := map[int]bool{focal.ID: true}

	for _, r := range reviews {
		if !seen[r.ID] && strings.EqualFold(r.Artist, focal.Artist) {
			seen[r.ID] = true
			out = append(out, r)
		}
	}

	needle := strings.ToLower(focal.Artist)
	if needle == "" {
		return out
	}

	for _, r := range reviews {
		if seen[r.ID] {
			continue
		}
		if strings.Contains(strings.ToLower(r.Title), needle) || strings.Contains(strings.ToLower(r.Body), needle) {
			seen[r.ID] = true
			out = append(out, r)
		}
	}

	return out
}
