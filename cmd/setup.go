package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/partyx/internal/shared"
	"github.com/desertthunder/partyx/internal/ui"
	"github.com/urfave/cli/v3"
)

// loadOrCreateConfig reads path, writing the embedded example there first when it is missing.
// Any failure falls back to defaults so setup can still create a database.
func (r *Runner) loadOrCreateConfig(path string) *shared.Config {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		r.logger.Info("config file not found, creating from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			return shared.DefaultConfig()
		}
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "path", path, "error", err)
		return shared.DefaultConfig()
	}
	return config
}

// Setup writes a config file when none exists, then migrates the database it points to.
// Without --config it uses the path the runner was started with.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if !cmd.IsSet("config") && r.configPath != "" {
		path = r.configPath
	}
	config := r.loadOrCreateConfig(path)

	r.logger.Info("initializing database", "path", config.Database.Path)
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.writePlain("%s Database ready at %s\n", ui.OK("✓"), config.Database.Path)
	r.writePlain("Next: run 'partyx seed' for sample data or 'partyx serve' to start the API\n")
	return nil
}

// DBMigrate applies pending schema migrations.
func (r *Runner) DBMigrate(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}
	return r.DBStatus(ctx, cmd)
}

// DBRollback reverts the newest applied migration.
func (r *Runner) DBRollback(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	m, err := shared.RollbackMigration(r.db)
	if errors.Is(err, shared.ErrNoMigrations) {
		return r.writePlain("%s\n", ui.Muted("Nothing to roll back"))
	}
	if err != nil {
		return err
	}

	r.logger.Warn("migration rolled back", "version", m.Version, "name", m.Name)
	return r.writePlain("%s Rolled back %04d_%s\n", ui.Warn("↶"), m.Version, m.Name)
}

func (r *Runner) DBStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	statuses, err := shared.MigrationStatuses(r.db)
	if err != nil {
		return err
	}

	for _, s := range statuses {
		applied := ui.Muted("pending")
		if s.Applied() {
			applied = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		r.writePlain("%s %04d_%-24s %s\n", ui.Check(s.Applied()), s.Version, s.Name, applied)
	}
	return nil
}
