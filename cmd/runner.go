package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/partyx/internal/catalog"
	"github.com/desertthunder/partyx/internal/party"
	"github.com/desertthunder/partyx/internal/repositories"
	"github.com/desertthunder/partyx/internal/services"
	"github.com/desertthunder/partyx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The record store and everything built on it are opened on first use, so commands that never touch the
// database (api, setup) do not create one.
type Runner struct {
	config     *shared.Config
	configPath string
	db         *sql.DB
	lookup     services.MediaLookup
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	coord   *party.Coordinator
	catalog *catalog.Catalog
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	DB         *sql.DB              // optional; opened from Config.Database when nil
	Lookup     services.MediaLookup // optional; built from Config.Media when nil
	API        *services.APIService
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
		opts.HTTPClient = http.DefaultClient
	}
	if opts.API == nil {
		opts.API = services.NewAPIService("http://"+opts.Config.Server.Addr(), opts.HTTPClient)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		db:         opts.DB,
		lookup:     opts.Lookup,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, dbCommand, serveCommand, seedCommand, partyCommand, playlistCommand, taskCommand, mediaCommand, exportCommand, apiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// open connects the record store, runs pending migrations and wires the coordinator and catalog.
func (r *Runner) open(ctx context.Context) error {
	if r.coord != nil {
		return nil
	}

	if r.db == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return err
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		r.db = db
	}

	users := repositories.NewUserRepository(r.db)
	locations := repositories.NewLocationRepository(r.db)
	songs := repositories.NewSongRepository(r.db)

	if r.lookup == nil {
		lookup, err := services.NewLookup(r.config.Credentials, r.config.Media, repositories.NewLinkCache(songs), r.httpClient)
		if err != nil {
			return err
		}
		r.lookup = lookup
	}

	r.coord = party.NewCoordinator(party.Stores{
		Parties:   repositories.NewPartyRepository(r.db),
		Users:     users,
		Locations: locations,
		Songs:     songs,
		Tasks:     repositories.NewTaskRepository(r.db),
	}, r.lookup, shared.WithLogger(r.logger, "pkg", "party"))

	r.catalog = catalog.New(catalog.Opts{
		Users:     users,
		Locations: locations,
		Songs:     songs,
		Foods:     repositories.NewFoodRepository(r.db),
		Logger:    shared.WithLogger(r.logger, "pkg", "catalog"),
	})

	r.logger.Debug("store opened", "path", r.config.Database.Path, "lookup", r.lookup.Name())
	return nil
}

// Close releases the record store.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
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
