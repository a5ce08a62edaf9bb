package tasks

import (
	"fmt"

	"github.com/desertthunder/pseudology/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	WriteListings Phase = iota
	ExportReviews
	DownloadCovers
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case WriteListings:
		return "write_listings"
	case ExportReviews:
		return "export_reviews"
	case DownloadCovers:
		return "download_covers"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func listingUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteListings,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Writing %s...", step, total, name),
	}
}

func reviewCompletedUpdate(step, total int, r models.Review, filesCount int) ProgressUpdate {
	phase := ExportReviews
	if filesCount > 1 {
		phase = DownloadCovers
	}
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s - %s (%d files)", step, total, r.Artist, r.Title, filesCount),
	}
}

func reviewFailedUpdate(step, total int, r models.Review, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReviews,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s - %s: %v", step, total, r.Artist, r.Title, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest %s...", path),
	}
}
