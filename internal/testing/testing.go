// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/desertthunder/pseudology/internal/models"
)

// MockProvider is a test double for [services.Provider] serving fixed rows or errors.
type MockProvider struct {
	Reviews    []models.ReviewRow
	Ranks      []models.RankRow
	About      models.About
	ReviewsErr error
	RanksErr   error
	AboutErr   error
}

func (m *MockProvider) LoadReviews(ctx context.Context) ([]models.ReviewRow, error) {
	if m.ReviewsErr != nil {
		return nil, m.ReviewsErr
	}
	return m.Reviews, nil
}

func (m *MockProvider) LoadAnnualRanks(ctx context.Context) ([]models.RankRow, error) {
	if m.RanksErr != nil {
		return nil, m.RanksErr
	}
	return m.Ranks, nil
}

func (m *MockProvider) LoadAboutText(ctx context.Context) (models.About, error) {
	if m.AboutErr != nil {
		return models.About{}, m.AboutErr
	}
	return m.About, nil
}

func (m *MockProvider) ImageURL(imageID string) string {
	if imageID == "" {
		return ""
	}
	return "https://images.test/" + imageID
}

func (m *MockProvider) Name() string { return "mock" }

// MakeReviews builds n dated reviews, newest first, with ids 1..n.
//
// Artists cycle through artists (or a single "ARTIST" when none are given).
func MakeReviews(n int, artists ...string) []models.Review {
	if len(artists) == 0 {
		artists = []string{"ARTIST"}
	}

	start := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	reviews := make([]models.Review, n)
	for i := range reviews {
		date := start.AddDate(0, 0, -i)
		reviews[i] = models.Review{
			ID:     i + 1,
			Artist: artists[i%len(artists)],
			Title:  fmt.Sprintf("Album %02d", i+1),
			Body:   fmt.Sprintf("Review number %d.", i+1),
			Date:   &date,
			Color:  models.ColorFor(i + 1),
		}
	}
	return reviews
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
