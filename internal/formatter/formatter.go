// package formatter renders reviews, rankings and the library index as CSV, Markdown or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/pseudology/internal/archive"
	"github.com/desertthunder/pseudology/internal/models"
	"github.com/desertthunder/pseudology/internal/shared"
)

// Format names an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// Extension is the file extension used when exporting in f.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatCSV:
		return "csv"
	default:
		return "txt"
	}
}

// ParseFormat converts a flag value into a [Format]. "md" is accepted for Markdown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, name)
	}
}

// Listing is a titled list of reviews.
type Listing struct {
	Title   string
	Reviews []models.Review
}

// ExportListing renders a listing in the requested format.
func ExportListing(l Listing, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(l.Reviews)
	case FormatMarkdown:
		return ExportToMarkdown(l)
	default:
		return ExportToText(l)
	}
}

// ExportToCSV converts reviews to CSV with columns: ID, Artist, Title, Date, Image
func ExportToCSV(reviews []models.Review) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Artist", "Title", "Date", "Image"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range reviews {
		record := []string{strconv.Itoa(r.ID), r.Artist, r.Title, dateCell(r), r.Image}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a listing to a Markdown list
func ExportToMarkdown(l Listing) ([]byte, error) {
	var buf bytes.Buffer

	if l.Title != "" {
		fmt.Fprintf(&buf, "# %s\n\n", l.Title)
	}
	fmt.Fprintf(&buf, "**Reviews**: %d\n\n", len(l.Reviews))

	for _, r := range l.Reviews {
		fmt.Fprintf(&buf, "- **%s** - *%s* (%s) `#%d`\n", r.Artist, r.Title, r.DateString(), r.ID)
	}

	return buf.Bytes(), nil
}

// ExportToText converts a listing to plain text
func ExportToText(l Listing) ([]byte, error) {
	var buf bytes.Buffer

	if l.Title != "" {
		fmt.Fprintf(&buf, "%s\n", l.Title)
	}
	fmt.Fprintf(&buf, "Reviews: %d\n\n", len(l.Reviews))

	for _, r := range l.Reviews {
		fmt.Fprintf(&buf, "%4d. %s - %s [%s]\n", r.ID, r.Artist, r.Title, r.DateString())
	}

	return buf.Bytes(), nil
}

// ExportReview renders a single review in full.
func ExportReview(r models.Review, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV([]models.Review{r})
	case FormatMarkdown:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "# %s\n\n## %s\n\n", r.Title, r.Artist)
		if r.HasImage() {
			fmt.Fprintf(&buf, "![Cover](%s)\n\n", r.Image)
		}
		fmt.Fprintf(&buf, "*%s*\n\n%s\n", r.DateString(), r.Body)
		return buf.Bytes(), nil
	default:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "%s\n%s\n%s\n", r.Artist, r.Title, r.DateString())
		if r.HasImage() {
			fmt.Fprintf(&buf, "Image: %s\n", r.Image)
		}
		fmt.Fprintf(&buf, "\n%s\n", r.Body)
		return buf.Bytes(), nil
	}
}

// ExportRanking renders a year's best-of list. Placeholder entries are marked.
func ExportRanking(rk archive.Ranking, f Format) ([]byte, error) {
	var buf bytes.Buffer

	switch f {
	case FormatCSV:
		writer := csv.NewWriter(&buf)
		if err := writer.Write([]string{"Year", "Rank", "ID", "Artist", "Title", "Reviewed"}); err != nil {
			return nil, fmt.Errorf("failed to write CSV headers: %w", err)
		}
		for _, item := range rk.Items {
			record := []string{
				rk.Year,
				strconv.Itoa(item.Rank),
				strconv.Itoa(item.Review.ID),
				item.Review.Artist,
				item.Review.Title,
				strconv.FormatBool(!item.IsFallback),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return nil, fmt.Errorf("CSV writer error: %w", err)
		}
	case FormatMarkdown:
		fmt.Fprintf(&buf, "# Best of %s\n\n", rk.Year)
		if rk.Overview != "" {
			fmt.Fprintf(&buf, "%s\n\n", rk.Overview)
		}
		for _, item := range rk.Items {
			suffix := ""
			if item.IsFallback {
				suffix = " _(not yet reviewed)_"
			}
			fmt.Fprintf(&buf, "%d. **%s** - *%s*%s\n", item.Rank, item.Review.Artist, item.Review.Title, suffix)
		}
	default:
		fmt.Fprintf(&buf, "Best of %s\n", rk.Year)
		if rk.Overview != "" {
			fmt.Fprintf(&buf, "%s\n", rk.Overview)
		}
		buf.WriteString("\n")
		for _, item := range rk.Items {
			mark := " "
			if item.IsFallback {
				mark = "*"
			}
			fmt.Fprintf(&buf, "%3d.%s %s - %s\n", item.Rank, mark, item.Review.Artist, item.Review.Title)
		}
	}

	return buf.Bytes(), nil
}

// ExportLibrary renders the library index, one heading per initial.
func ExportLibrary(sections []archive.Section, f Format) ([]byte, error) {
	if f == FormatCSV {
		return ExportToCSV(archive.Flatten(sections))
	}

	var buf bytes.Buffer
	for _, s := range sections {
		if f == FormatMarkdown {
			fmt.Fprintf(&buf, "## %s\n\n", s.Initial)
		} else {
			fmt.Fprintf(&buf, "[%s]\n", s.Initial)
		}

		for _, g := range s.Artists {
			if f == FormatMarkdown {
				fmt.Fprintf(&buf, "- **%s** (%d)\n", g.Name, len(g.Reviews))
			} else {
				fmt.Fprintf(&buf, "  %s (%d)\n", g.Name, len(g.Reviews))
			}
			for _, r := range g.Reviews {
				if f == FormatMarkdown {
					fmt.Fprintf(&buf, "  - *%s* `#%d`\n", r.Title, r.ID)
				} else {
					fmt.Fprintf(&buf, "    - %s #%d\n", r.Title, r.ID)
				}
			}
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportAbout renders the about text.
func ExportAbout(a models.About, f Format) ([]byte, error) {
	var buf bytes.Buffer

	switch f {
	case FormatMarkdown:
		fmt.Fprintf(&buf, "## About this site\n\n%s\n\n## Profile\n\n%s\n", a.SiteDescription, a.ProfileDescription)
	case FormatCSV:
		return nil, fmt.Errorf("%w: about text has no CSV form", shared.ErrInvalidFlag)
	default:
		fmt.Fprintf(&buf, "About this site\n\n%s\n\nProfile\n\n%s\n", a.SiteDescription, a.ProfileDescription)
	}

	return buf.Bytes(), nil
}

// WriteExport writes rendered data to path.
func WriteExport(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("%w: empty output path", shared.ErrMissingArgument)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func dateCell(r models.Review) string {
	if !r.IsDated() {
		return ""
	}
	return r.DateString()
}
