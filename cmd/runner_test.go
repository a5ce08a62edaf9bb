package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/pseudology/internal/archive"
	"github.com/desertthunder/pseudology/internal/models"
	"github.com/desertthunder/pseudology/internal/server"
	"github.com/desertthunder/pseudology/internal/shared"
	tu "github.com/desertthunder/pseudology/internal/testing"
)

// newMockProvider serves ten reviews alternating between SLINT and LOW, dated 2024-01-01
// through 2024-01-10, so review 10 is the newest.
func newMockProvider() *tu.MockProvider {
	rows := make([]models.ReviewRow, 10)
	for i := range rows {
		artist := "Slint"
		if i%2 == 1 {
			artist = "Low"
		}
		rows[i] = models.ReviewRow{
			Artist: artist,
			Title:  "Album " + string(rune('A'+i)),
			Body:   "Body text.",
			Date:   "2024-01-" + []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10"}[i],
		}
	}
	rows[2].ImageID = "cover"

	return &tu.MockProvider{
		Reviews: rows,
		Ranks: []models.RankRow{
			{Year: "2024", Rank: "0", Comment: "A quiet year."},
			{Year: "2024", Rank: "1", Artist: "LOW", Title: "Album B"},
			{Year: "2024", Rank: "2", Artist: "Nobody", Title: "Nothing"},
			{Year: "2023", Rank: "1", Artist: "SLINT", Title: "Album A"},
		},
		About: models.About{SiteDescription: "Site text.", ProfileDescription: "Profile text."},
	}
}

func newTestRunner(output io.Writer, provider *tu.MockProvider) *Runner {
	config := shared.DefaultConfig()
	config.Session.Seed = 7
	return NewRunner(RunnerOpts{
		Config:   config,
		Provider: provider,
		Logger:   shared.NewLogger(io.Discard),
		Output:   output,
	})
}

func run(r *Runner, args ...string) error {
	app := &cli.Command{
		Name:     "pseudology",
		Flags:    rootFlags(),
		Before:   r.configure,
		Commands: r.register(),
		Writer:   io.Discard,
	}
	return app.Run(context.Background(), append([]string{"pseudology"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			provider := &tu.MockProvider{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Provider:   provider,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.source() != provider {
				t.Error("expected provider to be used as the source")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses the source timeout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})

			if runner.httpClient == nil {
				t.Fatal("expected httpClient to be set")
			}
			if runner.httpClient.Timeout != runner.config.Source.Timeout() {
				t.Errorf("expected timeout %v, got %v", runner.config.Source.Timeout(), runner.httpClient.Timeout)
			}
		})

		t.Run("without provider builds a sheet provider", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if name := runner.source().Name(); name != "Published Sheets" {
				t.Errorf("expected sheet provider, got %s", name)
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("seed", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})

		if got := runner.seed(99); got != 99 {
			t.Errorf("expected explicit seed 99, got %d", got)
		}

		runner.config.Session.Seed = 42
		if got := runner.seed(0); got != 42 {
			t.Errorf("expected configured seed 42, got %d", got)
		}

		runner.config.Session.Seed = 0
		if got := runner.seed(0); got == 0 {
			t.Error("expected a derived non-zero seed")
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if result := output.String(); result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if result := output.String(); result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("writePlainln surrounds text with newlines", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlainln("Next %d", 1); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if result := output.String(); result != "\nNext 1\n" {
				t.Errorf("expected %q, got %q", "\nNext 1\n", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := []string{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names = append(names, cmd.Name)
		}

		expected := "setup reviews library best about export serve tui"
		if got := strings.Join(names, " "); got != expected {
			t.Errorf("expected commands %q, got %q", expected, got)
		}
	})

	t.Run("configure", func(t *testing.T) {
		t.Run("loads an explicit config", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "custom.toml")
			content := "[log]\nlevel = \"debug\"\n\n[session]\nseed = 42\n"
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			runner := newTestRunner(&bytes.Buffer{}, newMockProvider())
			if err := run(runner, "--config", path, "about"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if runner.config.Session.Seed != 42 {
				t.Errorf("expected seed 42 from config, got %d", runner.config.Session.Seed)
			}
			if runner.configPath != path {
				t.Errorf("expected configPath %s, got %s", path, runner.configPath)
			}
		})

		t.Run("rejects an invalid config", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "broken.toml")
			if err := os.WriteFile(path, []byte("[log\nlevel ="), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			runner := newTestRunner(&bytes.Buffer{}, newMockProvider())
			err := run(runner, "--config", path, "about")
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})
}

func TestReviewsCommands(t *testing.T) {
	t.Run("recent as JSON", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())

		if err := run(runner, "reviews", "recent", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var reviews []models.Review
		if err := json.Unmarshal(output.Bytes(), &reviews); err != nil {
			t.Fatalf("failed to decode output: %v", err)
		}
		if len(reviews) != 6 {
			t.Fatalf("expected 6 recent reviews, got %d", len(reviews))
		}
		if reviews[0].ID != 10 || reviews[5].ID != 5 {
			t.Errorf("expected ids 10..5, got first %d last %d", reviews[0].ID, reviews[5].ID)
		}
	})

	t.Run("recent as text", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())

		if err := run(runner, "reviews", "recent"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "New reviews") || !strings.Contains(result, "Reviews: 6") {
			t.Errorf("unexpected text output: %s", result)
		}
		if !strings.Contains(result, "LOW - Album J [2024-01-10]") {
			t.Errorf("expected newest review line, got %s", result)
		}
	})

	t.Run("recent exported to a file", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())
		path := filepath.Join(t.TempDir(), "exports", "recent.csv")

		if err := run(runner, "reviews", "recent", "--format", "csv", "--output", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, path)
		content := tu.MustReadFile(t, path)
		if !strings.HasPrefix(content, "ID,Artist,Title,Date,Image") {
			t.Errorf("expected CSV header, got %s", content)
		}
		if output.Len() != 0 {
			t.Errorf("expected nothing on stdout, got %q", output.String())
		}
	})

	t.Run("recent with failing provider prints an empty list", func(t *testing.T) {
		output := &bytes.Buffer{}
		provider := newMockProvider()
		provider.ReviewsErr = shared.ErrFetchFailed
		runner := newTestRunner(output, provider)

		if err := run(runner, "reviews", "recent", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := strings.TrimSpace(output.String()); got != "[]" {
			t.Errorf("expected [], got %s", got)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		runner := newTestRunner(&bytes.Buffer{}, newMockProvider())

		err := run(runner, "reviews", "recent", "--format", "yaml")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("pickups skip the recent reviews", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())

		if err := run(runner, "reviews", "pickups", "--json", "--seed", "3"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var page server.Page
		if err := json.Unmarshal(output.Bytes(), &page); err != nil {
			t.Fatalf("failed to decode output: %v", err)
		}
		if page.Total != 4 || len(page.Items) != 4 || page.HasMore {
			t.Errorf("expected all 4 pick-ups on one page, got %+v", page)
		}
		for _, r := range page.Items {
			if r.ID > 4 {
				t.Errorf("pick-up %d is one of the recent reviews", r.ID)
			}
		}
	})

	t.Run("pickups page far past the end is empty", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())

		if err := run(runner, "reviews", "pickups", "--json", "--page", "6148914691236517206"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var page server.Page
		if err := json.Unmarshal(output.Bytes(), &page); err != nil {
			t.Fatalf("failed to decode output: %v", err)
		}
		if len(page.Items) != 0 || page.HasMore || page.Total != 4 {
			t.Errorf("expected an empty page, got %+v", page)
		}
	})

	t.Run("pickups reject a bad seed and page", func(t *testing.T) {
		runner := newTestRunner(&bytes.Buffer{}, newMockProvider())

		if err := run(runner, "reviews", "pickups", "--seed", "x"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag for seed, got %v", err)
		}
		if err := run(runner, "reviews", "pickups", "--page", "0"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag for page, got %v", err)
		}
	})

	t.Run("search by artist", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())

		if err := run(runner, "reviews", "search", "--json", "--mode", "artist", "slint"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var result server.SearchResult
		if err := json.Unmarshal(output.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode output: %v", err)
		}
		if result.Count != 5 || result.Mode != archive.ModeArtist {
			t.Errorf("expected 5 artist matches, got %d in %s", result.Count, result.Mode)
		}
	})

	t.Run("search errors", func(t *testing.T) {
		runner := newTestRunner(&bytes.Buffer{}, newMockProvider())

		if err := run(runner, "reviews", "search"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if err := run(runner, "reviews", "search", "--mode", "body", "x"); !errors.Is(err, shared.ErrInvalidMode) {
			t.Errorf("expected ErrInvalidMode, got %v", err)
		}
	})

	t.Run("show as markdown", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())

		if err := run(runner, "reviews", "show", "--format", "markdown", "3"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "# Album C") {
			t.Errorf("expected title heading, got %s", result)
		}
		if !strings.Contains(result, "![Cover](https://images.test/cover)") {
			t.Errorf("expected cover image, got %s", result)
		}
	})

	t.Run("show errors", func(t *testing.T) {
		runner := newTestRunner(&bytes.Buffer{}, newMockProvider())

		if err := run(runner, "reviews", "show", "99"); !errors.Is(err, shared.ErrReviewNotFound) {
			t.Errorf("expected ErrReviewNotFound, got %v", err)
		}
		if err := run(runner, "reviews", "show", "abc"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if err := run(runner, "reviews", "show"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("related excludes the focal review", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())

		if err := run(runner, "reviews", "related", "--json", "10"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var page server.Page
		if err := json.Unmarshal(output.Bytes(), &page); err != nil {
			t.Fatalf("failed to decode output: %v", err)
		}
		if len(page.Items) == 0 {
			t.Fatal("expected related reviews")
		}
		if page.Items[0].Artist != "LOW" {
			t.Errorf("expected same-artist reviews first, got %s", page.Items[0].Artist)
		}
		for _, r := range page.Items {
			if r.ID == 10 {
				t.Error("focal review listed as related")
			}
		}
	})
}

func TestLibraryCommand(t *testing.T) {
	t.Run("single letter", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())

		if err := run(runner, "library", "--json", "--letter", "s"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var sections []archive.Section
		if err := json.Unmarshal(output.Bytes(), &sections); err != nil {
			t.Fatalf("failed to decode output: %v", err)
		}
		if len(sections) != 1 || sections[0].Initial != "S" {
			t.Fatalf("expected the S section, got %+v", sections)
		}
		if len(sections[0].Artists) != 1 || len(sections[0].Artists[0].Reviews) != 5 {
			t.Errorf("expected SLINT with 5 reviews, got %+v", sections[0].Artists)
		}
	})

	t.Run("unknown letter", func(t *testing.T) {
		runner := newTestRunner(&bytes.Buffer{}, newMockProvider())

		if err := run(runner, "library", "--letter", "q"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestBestCommand(t *testing.T) {
	t.Run("defaults to the latest year", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())

		if err := run(runner, "best", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var result server.BestResult
		if err := json.Unmarshal(output.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode output: %v", err)
		}
		if result.Year != "2024" || result.Overview != "A quiet year." {
			t.Errorf("expected 2024 with overview, got %q %q", result.Year, result.Overview)
		}
		if len(result.Items) != 2 {
			t.Fatalf("expected 2 ranked items, got %d", len(result.Items))
		}
		if result.Items[0].IsFallback || result.Items[0].Review.ID != 2 {
			t.Errorf("expected rank 1 matched to review 2, got %+v", result.Items[0])
		}
		if !result.Items[1].IsFallback {
			t.Error("expected rank 2 to be a fallback")
		}
	})

	t.Run("lists years", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())

		if err := run(runner, "best", "--years"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := output.String(); got != "2024\n2023\n" {
			t.Errorf("expected years newest first, got %q", got)
		}
	})

	t.Run("unknown year", func(t *testing.T) {
		runner := newTestRunner(&bytes.Buffer{}, newMockProvider())

		if err := run(runner, "best", "--year", "1999"); !errors.Is(err, shared.ErrYearNotFound) {
			t.Errorf("expected ErrYearNotFound, got %v", err)
		}
	})

	t.Run("no rankings loaded", func(t *testing.T) {
		provider := newMockProvider()
		provider.Ranks = nil
		runner := newTestRunner(&bytes.Buffer{}, provider)

		if err := run(runner, "best"); !errors.Is(err, shared.ErrYearNotFound) {
			t.Errorf("expected ErrYearNotFound, got %v", err)
		}
	})
}

func TestAboutCommand(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())

		if err := run(runner, "about", "--format", "md"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "## About this site\n\nSite text.") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("failing provider shows placeholders", func(t *testing.T) {
		output := &bytes.Buffer{}
		provider := newMockProvider()
		provider.AboutErr = shared.ErrFetchFailed
		runner := newTestRunner(output, provider)

		if err := run(runner, "about", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var about models.About
		if err := json.Unmarshal(output.Bytes(), &about); err != nil {
			t.Fatalf("failed to decode output: %v", err)
		}
		if about != models.PlaceholderAbout() {
			t.Errorf("expected placeholder about, got %+v", about)
		}
	})
}

func TestSetupConfig(t *testing.T) {
	t.Run("writes to the given path", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := run(runner, "setup", "config", "--path", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, path)
		if _, err := shared.LoadConfig(path); err != nil {
			t.Errorf("expected written config to load, got %v", err)
		}
		if !strings.Contains(output.String(), "Config written to") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		runner := newTestRunner(&bytes.Buffer{}, newMockProvider())
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("# mine\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if err := run(runner, "setup", "config", "--path", path); err == nil {
			t.Fatal("expected error for existing file")
		}
		if got := tu.MustReadFile(t, path); got != "# mine\n" {
			t.Errorf("expected file untouched, got %q", got)
		}

		if err := run(runner, "setup", "config", "--path", path, "--force"); err != nil {
			t.Fatalf("expected overwrite with --force, got %v", err)
		}
		if got := tu.MustReadFile(t, path); got == "# mine\n" {
			t.Error("expected file to be replaced")
		}
	})

	t.Run("defaults to config.toml in the working directory", func(t *testing.T) {
		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		dir := t.TempDir()
		tu.MustChdir(t, dir)
		defer tu.MustChdir(t, wd)

		runner := newTestRunner(&bytes.Buffer{}, newMockProvider())
		if err := run(runner, "setup", "config"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "config.toml"))
	})
}

func TestExportCommand(t *testing.T) {
	t.Run("writes the archive and a summary", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(output, newMockProvider())
		dir := filepath.Join(t.TempDir(), "snapshot")

		if err := run(runner, "export", "--dir", dir, "--format", "text", "--workers", "2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "recent.txt"))
		tu.AssertFileExists(t, filepath.Join(dir, "best", "2024.txt"))
		tu.AssertFileExists(t, filepath.Join(dir, "reviews", "10.txt"))
		tu.AssertFileExists(t, filepath.Join(dir, "export_manifest.json"))

		if !strings.Contains(output.String(), "Reviews: 10 exported, 0 failed") {
			t.Errorf("unexpected summary: %s", output.String())
		}
	})

	t.Run("rejects an unknown format", func(t *testing.T) {
		runner := newTestRunner(&bytes.Buffer{}, newMockProvider())

		err := run(runner, "export", "--dir", t.TempDir(), "--format", "pdf")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

// growingProvider serves one more review row on every call and fails every reviews call from
// failFrom onwards (0 never fails).
type growingProvider struct {
	*tu.MockProvider
	calls    atomic.Int32
	failFrom int32
}

func (p *growingProvider) LoadReviews(ctx context.Context) ([]models.ReviewRow, error) {
	n := p.calls.Add(1)
	if p.failFrom > 0 && n >= p.failFrom {
		return nil, shared.ErrFetchFailed
	}
	return p.Reviews[:min(int(n), len(p.Reviews))], nil
}

func TestRefresh(t *testing.T) {
	refresh := func(t *testing.T, p *growingProvider) *server.API {
		t.Helper()
		config := shared.DefaultConfig()
		config.Session.Seed = 7
		r := NewRunner(RunnerOpts{Config: config, Provider: p, Logger: shared.NewLogger(io.Discard), Output: io.Discard})

		api := server.NewAPI(r.loadArchive(context.Background(), 0), r.logger)
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
		defer cancel()
		r.refresh(ctx, api, 0, 10*time.Millisecond)
		return api
	}

	t.Run("Swaps In Complete Reload", func(t *testing.T) {
		p := &growingProvider{MockProvider: newMockProvider()}
		api := refresh(t, p)
		if p.calls.Load() < 2 {
			t.Fatalf("expected at least one reload, got %d calls", p.calls.Load())
		}
		if got := api.Archive().Len(); got < 2 {
			t.Errorf("expected reloaded archive to grow, got %d reviews", got)
		}
	})

	t.Run("Keeps Archive On Failed Reload", func(t *testing.T) {
		p := &growingProvider{MockProvider: newMockProvider(), failFrom: 2}
		api := refresh(t, p)
		if p.calls.Load() < 2 {
			t.Fatalf("expected at least one reload, got %d calls", p.calls.Load())
		}
		if got := api.Archive().Len(); got != 1 {
			t.Errorf("expected the initial archive to keep serving, got %d reviews", got)
		}
	})
}
