package tasks

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/pseudology/internal/formatter"
	"github.com/desertthunder/pseudology/internal/navigation"
	"github.com/desertthunder/pseudology/internal/shared"
)

// ExportOpts contains configuration for an archive export.
type ExportOpts struct {
	Format     formatter.Format // Listing and review format (default: markdown)
	OutputDir  string           // Base output directory (default: pseudology_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 5, max: 10)
	RateLimit  float64          // Cover downloads per second (default: 5)
	Covers     bool             // Download cover images
}

// ReviewExportResult is the outcome of exporting one review.
type ReviewExportResult struct {
	ID      int      `json:"id"`
	Artist  string   `json:"artist"`
	Title   string   `json:"title"`
	Files   []string `json:"files"`
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
}

// ExportResult summarizes a finished export.
type ExportResult struct {
	Format            formatter.Format     `json:"format"`
	OutputDirectory   string               `json:"output_directory"`
	Listings          []string             `json:"listings"`
	TotalReviews      int                  `json:"total_reviews"`
	SuccessfulExports int                  `json:"successful_exports"`
	FailedExports     int                  `json:"failed_exports"`
	Results           []ReviewExportResult `json:"results"`
	ManifestPath      string               `json:"-"`
}

// Exporter writes archive snapshots to disk.
type Exporter struct {
	archive    *navigation.Archive
	httpClient *http.Client
	logger     *log.Logger
}

// NewExporter creates an Exporter for a; client downloads covers and defaults to [http.DefaultClient].
func NewExporter(a *navigation.Archive, client *http.Client, logger *log.Logger) *Exporter {
	if a == nil {
		a = navigation.EmptyArchive()
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{archive: a, httpClient: client, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
