package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/pseudology/internal/formatter"
	"github.com/desertthunder/pseudology/internal/models"
	"github.com/desertthunder/pseudology/internal/shared"
)

var unsafeName = strings.NewReplacer("/", "_", "\\", "_", "..", "_")

type listing struct {
	name   string
	render func(formatter.Format) ([]byte, error)
}

// Export writes the archive to opts.OutputDir with a worker pool and rate-limited cover downloads.
//
// Individual review failures are collected in the result. The returned error is reserved for
// failures that stop the export: directories, listings, cancellation and the manifest.
func (e *Exporter) Export(ctx context.Context, prog chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if opts.Format == "" {
		opts.Format = formatter.FormatMarkdown
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("pseudology_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	dirs := []string{opts.OutputDir, filepath.Join(opts.OutputDir, "reviews")}
	if opts.Covers {
		dirs = append(dirs, filepath.Join(opts.OutputDir, "covers"))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	reviews := e.archive.Reviews()
	result := &ExportResult{
		Format:          opts.Format,
		OutputDirectory: opts.OutputDir,
		TotalReviews:    len(reviews),
		Results:         make([]ReviewExportResult, 0, len(reviews)),
	}

	listings, err := e.writeListings(prog, opts)
	if err != nil {
		return result, err
	}
	result.Listings = listings

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan models.Review, len(reviews))
	results := make(chan ReviewExportResult, len(reviews))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, limiter, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for _, r := range reviews {
			select {
			case <-ctx.Done():
				return
			case jobs <- r:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	byID := make(map[int]models.Review, len(reviews))
	for _, r := range reviews {
		byID[r.ID] = r
	}

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, reviewCompletedUpdate(completed, len(reviews), byID[res.ID], len(res.Files)))
		} else {
			result.FailedExports++
			e.logger.Warn("review export failed", "id", res.ID, "error", res.Error)
			sendProgress(prog, reviewFailedUpdate(completed, len(reviews), byID[res.ID], fmt.Errorf("%s", res.Error)))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export cancelled after %d of %d reviews: %w", completed, len(reviews), err)
	}

	slices.SortFunc(result.Results, func(a, b ReviewExportResult) int { return a.ID - b.ID })

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	sendProgress(prog, manifestUpdate(manifestPath))

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return result, fmt.Errorf("export completed but failed to encode manifest: %w", err)
	}
	if err := formatter.WriteExport(manifestPath, data); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	e.logger.Info("export complete",
		"dir", opts.OutputDir,
		"reviews", result.SuccessfulExports,
		"failed", result.FailedExports,
		"listings", len(result.Listings))
	return result, nil
}

// writeListings writes the home, library, about and per-year ranking files.
func (e *Exporter) writeListings(prog chan<- ProgressUpdate, opts ExportOpts) ([]string, error) {
	a := e.archive
	listings := []listing{
		{name: "recent", render: func(f formatter.Format) ([]byte, error) {
			return formatter.ExportListing(formatter.Listing{Title: "New reviews", Reviews: a.Recent()}, f)
		}},
		{name: "library", render: func(f formatter.Format) ([]byte, error) {
			return formatter.ExportLibrary(a.Sections(), f)
		}},
	}
	if opts.Format != formatter.FormatCSV {
		listings = append(listings, listing{name: "about", render: func(f formatter.Format) ([]byte, error) {
			return formatter.ExportAbout(a.About(), f)
		}})
	}
	for _, year := range a.Years() {
		listings = append(listings, listing{
			name: filepath.Join("best", unsafeName.Replace(year)),
			render: func(f formatter.Format) ([]byte, error) {
				return formatter.ExportRanking(a.Ranking(year), f)
			},
		})
	}

	files := make([]string, 0, len(listings))
	for i, l := range listings {
		sendProgress(prog, listingUpdate(i+1, len(listings), l.name))

		data, err := l.render(opts.Format)
		if err != nil {
			return files, fmt.Errorf("failed to render %s: %w", l.name, err)
		}

		path := filepath.Join(opts.OutputDir, l.name+"."+opts.Format.Extension())
		if err := formatter.WriteExport(path, data); err != nil {
			return files, err
		}
		files = append(files, path)
	}

	return files, nil
}

// exportWorker is a worker goroutine that exports reviews from the jobs channel.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan models.Review,
	results chan<- ReviewExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for r := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportReview(ctx, limiter, r, opts)
	}
}

// exportReview writes one review and, when requested, its cover.
func (e *Exporter) exportReview(ctx context.Context, limiter *rate.Limiter, r models.Review, opts ExportOpts) ReviewExportResult {
	result := ReviewExportResult{
		ID:     r.ID,
		Artist: r.Artist,
		Title:  r.Title,
		Files:  []string{},
	}

	data, err := formatter.ExportReview(r, opts.Format)
	if err != nil {
		result.Error = fmt.Sprintf("render failed: %v", err)
		return result
	}

	path := filepath.Join(opts.OutputDir, "reviews", strconv.Itoa(r.ID)+"."+opts.Format.Extension())
	if err := formatter.WriteExport(path, data); err != nil {
		result.Error = err.Error()
		return result
	}
	result.Files = append(result.Files, path)

	if opts.Covers && r.HasImage() {
		if err := limiter.Wait(ctx); err != nil {
			result.Error = fmt.Sprintf("cover download cancelled: %v", err)
			return result
		}

		cover, err := e.downloadCover(ctx, r, filepath.Join(opts.OutputDir, "covers"))
		if err != nil {
			result.Error = err.Error()
			return result
		}
		result.Files = append(result.Files, cover)
	}

	result.Success = true
	return result
}

// downloadCover saves the review's image into dir, naming it by id and content type.
func (e *Exporter) downloadCover(ctx context.Context, r models.Review, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.Image, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: cover %d returned %d", shared.ErrUnexpectedStatus, r.ID, resp.StatusCode)
	}

	path := filepath.Join(dir, strconv.Itoa(r.ID)+coverExtension(resp.Header.Get("Content-Type")))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create cover file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return "", fmt.Errorf("%w: cover %d: %v", shared.ErrFetchFailed, r.ID, err)
	}
	return path, nil
}

func coverExtension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".jpg"
	}

	switch mediaType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
