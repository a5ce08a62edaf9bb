// Published spreadsheet [Provider] implementation
//
// Reads CSV exports of the review and ranking sheets and a plain-text export of the about document.
package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/desertthunder/pseudology/internal/models"
	"github.com/desertthunder/pseudology/internal/shared"
)

// SheetProvider implements [Provider] over published spreadsheet and document exports.
type SheetProvider struct {
	reviewsURL string
	ranksURL   string
	aboutURL   string
	resolve    models.ImageResolver
	httpClient *http.Client
}

// NewSheetProvider creates a provider for the configured source URLs.
//
// A nil client gets one with the configured timeout.
func NewSheetProvider(cfg shared.SourceConfig, client *http.Client) *SheetProvider {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}

	return &SheetProvider{
		reviewsURL: cfg.ReviewsURL,
		ranksURL:   cfg.RanksURL,
		aboutURL:   cfg.AboutURL,
		resolve:    NewImageResolver(cfg.ImageBaseURL),
		httpClient: client,
	}
}

// Name returns the provider name.
func (s *SheetProvider) Name() string {
	return "Published Sheets"
}

// ImageURL resolves an image id under the configured base URL.
func (s *SheetProvider) ImageURL(imageID string) string {
	return s.resolve(imageID)
}

// LoadReviews fetches the review sheet.
//
// Expected columns: artist, title, body, date, image_id. Missing columns read as empty strings.
func (s *SheetProvider) LoadReviews(ctx context.Context) ([]models.ReviewRow, error) {
	records, err := s.fetchCSV(ctx, "reviews", s.reviewsURL)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ReviewRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, models.ReviewRow{
			Artist:  rec["artist"],
			Title:   rec["title"],
			Body:    rec["body"],
			Date:    rec["date"],
			ImageID: rec["image_id"],
		})
	}
	return rows, nil
}

// LoadAnnualRanks fetches the ranking sheet.
//
// Expected columns: year, rank, artist, title, comment.
func (s *SheetProvider) LoadAnnualRanks(ctx context.Context) ([]models.RankRow, error) {
	records, err := s.fetchCSV(ctx, "ranks", s.ranksURL)
	if err != nil {
		return nil, err
	}

	rows := make([]models.RankRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, models.RankRow{
			Year:    rec["year"],
			Rank:    rec["rank"],
			Artist:  rec["artist"],
			Title:   rec["title"],
			Comment: rec["comment"],
		})
	}
	return rows, nil
}

// LoadAboutText fetches and parses the about document. See [ParseAbout].
func (s *SheetProvider) LoadAboutText(ctx context.Context) (models.About, error) {
	body, err := s.fetch(ctx, "about", s.aboutURL)
	if err != nil {
		return models.About{}, err
	}
	return ParseAbout(string(body)), nil
}

func (s *SheetProvider) fetch(ctx context.Context, name, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: no %s url", shared.ErrMissingConfig, name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", shared.ErrFetchFailed, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", shared.ErrFetchFailed, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: %d", shared.ErrUnexpectedStatus, name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", shared.ErrFetchFailed, name, err)
	}
	return body, nil
}

func (s *SheetProvider) fetchCSV(ctx context.Context, name, url string) ([]map[string]string, error) {
	body, err := s.fetch(ctx, name, url)
	if err != nil {
		return nil, err
	}

	records, err := ParseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return records, nil
}

// ParseCSV reads a CSV document whose first row names the columns.
//
// Header names are trimmed and lower-cased. Blank lines and rows whose cells are all empty are
// skipped. Short rows leave their trailing columns empty.
func ParseCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedPayload, err)
	}

	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	records := []map[string]string{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrMalformedPayload, err)
		}
		if blank(row) {
			continue
		}

		rec := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
