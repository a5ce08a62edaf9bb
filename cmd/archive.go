package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/pseudology/internal/archive"
	"github.com/desertthunder/pseudology/internal/formatter"
	"github.com/desertthunder/pseudology/internal/models"
	"github.com/desertthunder/pseudology/internal/server"
	"github.com/desertthunder/pseudology/internal/shared"
)

// ReviewsRecent prints the newest reviews.
func (r *Runner) ReviewsRecent(ctx context.Context, cmd *cli.Command) error {
	recent := r.loadArchive(ctx, 0).Recent()

	return r.emit(cmd, recent, func(f formatter.Format) ([]byte, error) {
		return formatter.ExportListing(formatter.Listing{Title: "New reviews", Reviews: recent}, f)
	})
}

// ReviewsPickups prints one page of the shuffled pick-up list.
func (r *Runner) ReviewsPickups(ctx context.Context, cmd *cli.Command) error {
	seed, err := seedValue(cmd)
	if err != nil {
		return err
	}
	page, err := pageValue(cmd)
	if err != nil {
		return err
	}

	a := r.loadArchive(ctx, seed)
	result := server.Paginate(a.Pickups(), page)
	r.logger.Debug("pick-ups", "seed", a.Seed(), "page", page, "total", result.Total)

	return r.emit(cmd, result, func(f formatter.Format) ([]byte, error) {
		title := fmt.Sprintf("Pick-ups (page %d, %d of %d)", page, len(result.Items), result.Total)
		return formatter.ExportListing(formatter.Listing{Title: title, Reviews: result.Items}, f)
	})
}

// ReviewsSearch prints the reviews matching the query argument.
func (r *Runner) ReviewsSearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	mode, err := archive.ParseMode(cmd.String("mode"))
	if err != nil {
		return err
	}

	items := r.loadArchive(ctx, 0).Search(query, mode)
	result := server.SearchResult{Query: query, Mode: mode, Count: len(items), Items: items}

	return r.emit(cmd, result, func(f formatter.Format) ([]byte, error) {
		title := fmt.Sprintf("Search %q in %s (%d)", query, mode, len(items))
		return formatter.ExportListing(formatter.Listing{Title: title, Reviews: items}, f)
	})
}

// ReviewsShow prints a single review.
func (r *Runner) ReviewsShow(ctx context.Context, cmd *cli.Command) error {
	id, err := idValue(cmd)
	if err != nil {
		return err
	}

	review, ok := r.loadArchive(ctx, 0).Review(id)
	if !ok {
		return fmt.Errorf("%w: %d", shared.ErrReviewNotFound, id)
	}

	return r.emit(cmd, review, func(f formatter.Format) ([]byte, error) {
		return formatter.ExportReview(review, f)
	})
}

// ReviewsRelated prints one page of the reviews related to a review.
func (r *Runner) ReviewsRelated(ctx context.Context, cmd *cli.Command) error {
	id, err := idValue(cmd)
	if err != nil {
		return err
	}
	page, err := pageValue(cmd)
	if err != nil {
		return err
	}

	a := r.loadArchive(ctx, 0)
	review, ok := a.Review(id)
	if !ok {
		return fmt.Errorf("%w: %d", shared.ErrReviewNotFound, id)
	}

	result := server.Paginate(a.Related(review), page)
	return r.emit(cmd, result, func(f formatter.Format) ([]byte, error) {
		title := fmt.Sprintf("Related to %s - %s (page %d of %d results)", review.Artist, review.Title, page, result.Total)
		return formatter.ExportListing(formatter.Listing{Title: title, Reviews: result.Items}, f)
	})
}

// Library prints the artist index, optionally limited to one initial.
func (r *Runner) Library(ctx context.Context, cmd *cli.Command) error {
	sections := r.loadArchive(ctx, 0).Sections()

	if letter := cmd.String("letter"); letter != "" {
		section, ok := archive.FindSection(sections, letter)
		if !ok {
			return fmt.Errorf("%w: no artists under %q", shared.ErrInvalidInput, letter)
		}
		sections = []archive.Section{section}
	}

	return r.emit(cmd, sections, func(f formatter.Format) ([]byte, error) {
		return formatter.ExportLibrary(sections, f)
	})
}

// Best prints the ranking of the requested year, or the list of years with --years.
func (r *Runner) Best(ctx context.Context, cmd *cli.Command) error {
	a := r.loadArchive(ctx, 0)
	years := a.Years()

	if cmd.Bool("years") {
		return r.emit(cmd, years, func(formatter.Format) ([]byte, error) {
			if len(years) == 0 {
				return nil, nil
			}
			return []byte(strings.Join(years, "\n") + "\n"), nil
		})
	}

	year := cmd.String("year")
	if year != "" && !slices.Contains(years, year) {
		return fmt.Errorf("%w: %s", shared.ErrYearNotFound, year)
	}
	if year == "" && len(years) == 0 {
		return fmt.Errorf("%w: no rankings loaded", shared.ErrYearNotFound)
	}

	ranking := a.Ranking(year)
	return r.emit(cmd, server.BestResult{Ranking: ranking, Years: years}, func(f formatter.Format) ([]byte, error) {
		return formatter.ExportRanking(ranking, f)
	})
}

// About prints the three about sections.
func (r *Runner) About(ctx context.Context, cmd *cli.Command) error {
	about := r.loadArchive(ctx, 0).About()
	if about == (models.About{}) {
		about = models.PlaceholderAbout()
	}

	return r.emit(cmd, about, func(f formatter.Format) ([]byte, error) {
		return formatter.ExportAbout(about, f)
	})
}

func seedValue(cmd *cli.Command) (uint64, error) {
	raw := cmd.String("seed")
	if raw == "" {
		return 0, nil
	}

	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: seed must be an unsigned integer", shared.ErrInvalidFlag)
	}
	return seed, nil
}

func pageValue(cmd *cli.Command) (int, error) {
	page := int(cmd.Int("page"))
	if page < 1 {
		return 0, fmt.Errorf("%w: page must be a positive integer", shared.ErrInvalidFlag)
	}
	return page, nil
}

func idValue(cmd *cli.Command) (int, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: review id is required", shared.ErrMissingArgument)
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: review id must be an integer", shared.ErrInvalidInput)
	}
	return id, nil
}
