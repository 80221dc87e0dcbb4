package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/soundcheck/internal/catalog"
	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/notes"
	"github.com/desertthunder/soundcheck/internal/repositories"
	"github.com/desertthunder/soundcheck/internal/services"
	"github.com/desertthunder/soundcheck/internal/shared"
	"github.com/desertthunder/soundcheck/internal/views"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	catalog    *catalog.Catalog
	store      models.PreferenceStore
	gateway    *services.Gateway
	providers  *views.Providers
	engine     *views.Engine
	notes      *notes.Manager
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	openURL    func(string) error

	db      *sql.DB
	closers []io.Closer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A Runner created with a Store skips opening the database; Providers replaces the
// gateway-backed enrichment sources.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    *catalog.Catalog
	Store      models.PreferenceStore
	Providers  *views.Providers
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	OpenURL    func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	r := &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		store:      opts.Store,
		providers:  opts.Providers,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		openURL:    opts.OpenURL,
	}
	r.wire()
	return r
}

// SetLogger replaces the logger and rebuilds every dependency that holds one.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	r.wire()
}

// wire builds the gateway and, once a store is available, the view engine and note manager.
func (r *Runner) wire() {
	r.gateway = services.NewGateway(r.config.Credentials, r.httpClient, r.logger)

	providers := views.ProvidersFromGateway(r.gateway)
	if r.providers != nil {
		providers = *r.providers
	}

	if r.store != nil {
		r.engine = views.NewEngine(r.catalog, r.store, providers, r.logger)
		r.notes = notes.NewManager(r.store)
	}
}

// Configure is the root Before hook: it applies --log-level, loads the dotenv file and the
// config file named by --config, and rebuilds the gateway with the resulting credentials.
//
// A missing config file keeps the current configuration.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if lvl := cmd.String("log-level"); lvl != "" {
		level, err := log.ParseLevel(lvl)
		if err != nil {
			return ctx, fmt.Errorf("%w: log-level %q", shared.ErrInvalidFlag, lvl)
		}
		shared.SetLogLevel(r.logger, level)
	}

	if err := shared.LoadEnvFile(cmd.String("env-file")); err != nil {
		return ctx, err
	}

	path := cmd.String("config")
	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.logger.Debug("loaded config", "path", path)
	}
	r.config.ApplyEnv()

	if p := r.config.Catalog.Path; p != "" {
		cat, err := catalog.Load(p)
		if err != nil {
			return ctx, err
		}
		r.catalog = cat
	}

	r.wire()
	return ctx, nil
}

// Open is the Before hook of commands that read or write preferences. It opens the SQLite
// store from the config, or an in-memory store when --ephemeral is set.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.store != nil {
		return ctx, nil
	}

	if cmd.Bool("ephemeral") {
		r.logger.Debug("using in-memory preference store")
		r.store = repositories.NewMemoryPreferences(r.logger)
		r.wire()
		return ctx, nil
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return ctx, fmt.Errorf("%w: %w", shared.ErrStorage, err)
	}
	r.db = db
	r.closers = append(r.closers, db)
	r.store = repositories.NewPreferenceRepository(repositories.NewSQLiteStore(db), r.logger)
	r.wire()
	return ctx, nil
}

// Close is the root After hook and releases the database and log files.
func (r *Runner) Close(ctx context.Context, cmd *cli.Command) error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil

	if r.db != nil {
		r.db, r.store, r.engine, r.notes = nil, nil, nil, nil
	}
	return errors.Join(errs...)
}

func (r *Runner) requireEngine() error {
	if r.engine == nil || r.notes == nil {
		return fmt.Errorf("%w: preference store not opened", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, artistsCommand, eventsCommand, notesCommand, lookupCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:     "soundcheck",
		Usage:    "Discover artists, like them, and keep notes on live events",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   r.Configure,
		After:    r.Close,
		Commands: r.register(),
	}
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// writeBytes writes pre-rendered output, adding a trailing newline when missing.
func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		return r.writePlain("\n")
	}
	return nil
}
