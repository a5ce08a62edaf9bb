package services

import (
	"context"
	"strings"

	"github.com/desertthunder/pseudology/internal/models"
)

// DefaultImageBaseURL is the prefix image ids are appended to when no base is configured.
const DefaultImageBaseURL = "https://lh3.googleusercontent.com/d/"

// Provider defines the source of the archive's raw data.
type Provider interface {
	// LoadReviews returns the review rows in sheet order.
	LoadReviews(ctx context.Context) ([]models.ReviewRow, error)

	// LoadAnnualRanks returns the ranking rows in sheet order.
	LoadAnnualRanks(ctx context.Context) ([]models.RankRow, error)

	// LoadAboutText returns the parsed about document.
	LoadAboutText(ctx context.Context) (models.About, error)

	// ImageURL resolves an image id to a displayable URL.
	ImageURL(imageID string) string

	// Name identifies the provider in logs.
	Name() string
}

// ResolveImageURL builds the image URL for imageID under [DefaultImageBaseURL].
func ResolveImageURL(imageID string) string {
	return NewImageResolver(DefaultImageBaseURL)(imageID)
}

// NewImageResolver returns a [models.ImageResolver] that appends ids to base.
//
// An empty id resolves to "".
func NewImageResolver(base string) models.ImageResolver {
	if base == "" {
		base = DefaultImageBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return func(imageID string) string {
		imageID = strings.TrimSpace(imageID)
		if imageID == "" {
			return ""
		}
		return base + imageID
	}
}
