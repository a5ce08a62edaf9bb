package archive

import (
	"math/rand/v2"

	"github.com/desertthunder/pseudology/internal/models"
)

// Shuffle returns a permutation of reviews determined entirely by seed.
func Shuffle(reviews []models.Review, seed uint64) []models.Review {
	out := make([]models.Review, len(reviews))
	copy(out, reviews)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Recent returns the first n reviews of the date-ordered collection.
func Recent(reviews []models.Review, n int) []models.Review {
	if n > len(reviews) {
		n = len(reviews)
	}
	if n < 0 {
		n = 0
	}
	out := make([]models.Review, n)
	copy(out, reviews[:n])
	return out
}

// Pickups returns the seeded shuffle of everything after the first skip reviews.
func Pickups(reviews []models.Review, skip int, seed uint64) []models.Review {
	if skip >= len(reviews) {
		return []models.Review{}
	}
	if skip < 0 {
		skip = 0
	}
	return Shuffle(reviews[skip:], seed)
}

// FindByID returns the review with the given id.
func FindByID(reviews []models.Review, id int) (models.Review, bool) {
	for _, r := range reviews {
		if r.ID == id {
			return r, true
		}
	}
	return models.Review{}, false
}
