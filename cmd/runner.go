package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/pseudology/internal/formatter"
	"github.com/desertthunder/pseudology/internal/navigation"
	"github.com/desertthunder/pseudology/internal/services"
	"github.com/desertthunder/pseudology/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	provider   services.Provider
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	// Provider overrides the sheet provider built from the config.
	Provider   services.Provider
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.Source.Timeout()}
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		provider:   opts.Provider,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, reviewsCommand, libraryCommand, bestCommand, aboutCommand, exportCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure applies the root flags: an explicit --config replaces the loaded config and
// --log-level overrides the configured level.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.IsSet("config") {
		path := cmd.String("config")
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.configPath = path
		shared.SetLogLevel(r.logger, shared.ParseLogLevel(config.Log.Level))
	}

	if level := cmd.String("log-level"); level != "" {
		shared.SetLogLevel(r.logger, shared.ParseLogLevel(level))
	}
	return ctx, nil
}

// SetLogger replaces the logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// source returns the injected provider or a sheet provider for the current config.
func (r *Runner) source() services.Provider {
	if r.provider != nil {
		return r.provider
	}
	return services.NewSheetProvider(r.config.Source, r.httpClient)
}

// seed picks the pick-up shuffle seed: an explicit value, then the config, then a fresh session id.
func (r *Runner) seed(explicit uint64) uint64 {
	if explicit != 0 {
		return explicit
	}
	if r.config.Session.Seed != 0 {
		return r.config.Session.Seed
	}
	return shared.SessionSeed(shared.GenerateID())
}

// loadArchive fetches all payloads within the configured timeout. Failed payloads fall back.
func (r *Runner) loadArchive(ctx context.Context, seed uint64) *navigation.Archive {
	a, _ := r.fetchArchive(ctx, seed)
	return a
}

// fetchArchive is loadArchive that also reports the first payload failure.
func (r *Runner) fetchArchive(ctx context.Context, seed uint64) (*navigation.Archive, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Source.Timeout())
	defer cancel()

	payload := services.Load(ctx, r.source(), r.logger)
	return navigation.NewArchive(payload.Reviews, payload.Ranks, payload.About, r.seed(seed)), payload.Err
}

// emit writes data as JSON when --json is set, otherwise renders it in --format to stdout or --output.
func (r *Runner) emit(cmd *cli.Command, data any, render func(formatter.Format) ([]byte, error)) error {
	if cmd.Bool("json") {
		return r.writeJSON(data, cmd.Bool("pretty"))
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	out, err := render(format)
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(path, out); err != nil {
			return err
		}
		r.logger.Info("export written", "path", path, "format", format)
		return nil
	}

	return r.writePlain("%s", out)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
