package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/pseudology/internal/models"
)

// Payload is everything a session needs, already validated.
type Payload struct {
	Reviews []models.Review
	Ranks   []models.RankEntry
	About   models.About
	// Dropped counts ranking rows discarded as malformed.
	Dropped int
	// Failed names the payloads that were replaced by their fallbacks.
	Failed []string
	// Err is the first payload failure, nil when everything loaded.
	Err error
}

// Load fetches all payloads from p concurrently.
//
// Load always returns a usable payload: one that errors is replaced by its fallback, logged, and
// reported in Failed and Err. Cancelling ctx makes any unfinished payload fall back.
func Load(ctx context.Context, p Provider, logger *log.Logger) Payload {
	var (
		reviewRows []models.ReviewRow
		rankRows   []models.RankRow
		about      models.About
		errs       [3]error
	)

	// No derived context: one failed payload must not cancel the others.
	var g errgroup.Group
	g.Go(func() error {
		reviewRows, errs[0] = p.LoadReviews(ctx)
		return payloadErr("reviews", errs[0])
	})
	g.Go(func() error {
		rankRows, errs[1] = p.LoadAnnualRanks(ctx)
		return payloadErr("ranks", errs[1])
	})
	g.Go(func() error {
		about, errs[2] = p.LoadAboutText(ctx)
		return payloadErr("about", errs[2])
	})

	payload := Payload{Reviews: []models.Review{}, Ranks: []models.RankEntry{}, Err: g.Wait()}
	payload.About = about
	for i, name := range []string{"reviews", "ranks", "about"} {
		if errs[i] != nil {
			payload.Failed = append(payload.Failed, name)
			if logger != nil {
				logger.Warn("payload unavailable, using fallback", "payload", name, "provider", p.Name(), "error", errs[i])
			}
		}
	}

	if errs[0] == nil {
		payload.Reviews = models.NewCollection(reviewRows, p.ImageURL)
	}
	if errs[1] == nil {
		payload.Ranks, payload.Dropped = models.NewRankEntries(rankRows)
		if payload.Dropped > 0 && logger != nil {
			logger.Warn("dropped malformed ranking rows", "count", payload.Dropped)
		}
	}
	if errs[2] != nil {
		payload.About = models.PlaceholderAbout()
	}

	if logger != nil {
		logger.Info("archive loaded", "reviews", len(payload.Reviews), "ranks", len(payload.Ranks))
	}
	return payload
}

func payloadErr(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", name, err)
}
