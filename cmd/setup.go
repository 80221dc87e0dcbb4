package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/desertthunder/soundcheck/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase writes the config template when --config points at a missing file, then
// creates the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.writePlain("✓ Created %s\n", configPath)
			if config, err := shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
			} else {
				config.ApplyEnv()
				r.config = config
			}
		}
	}

	path := r.config.Database.Path
	r.logger.Info("initializing database", "path", path)

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	applied, err := shared.AppliedVersions(db)
	if err != nil {
		return err
	}

	r.logger.Infof("setup complete for database: %v", path)
	r.writePlain("✓ Database ready at %s (%d migrations applied)\n", path, len(applied))
	return nil
}

// SetupStatus lists the migration versions applied to the configured database.
func (r *Runner) SetupStatus(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	applied, err := shared.AppliedVersions(db)
	if err != nil {
		return fmt.Errorf("%w (run `soundcheck setup database` first)", err)
	}

	versions := make([]int, 0, len(applied))
	for v := range applied {
		versions = append(versions, v)
	}
	slices.Sort(versions)

	r.writePlainHeader("Migrations")
	r.writePlain("Database: %s\n", r.config.Database.Path)
	if len(versions) == 0 {
		r.writePlain("No migrations applied\n")
		return nil
	}
	for _, v := range versions {
		r.writePlain("  ✓ %04d\n", v)
	}
	return nil
}

// SetupRollback reverts the most recently applied migration. The down scripts drop stored
// preferences, so nothing runs without --yes.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	applied, err := shared.AppliedVersions(db)
	if err != nil {
		return fmt.Errorf("%w (run `soundcheck setup database` first)", err)
	}
	if len(applied) == 0 {
		r.writePlain("No migrations to roll back\n")
		return nil
	}
	latest := slices.Max(slices.Collect(maps.Keys(applied)))

	if !cmd.Bool("yes") {
		r.writePlain("Rolling back %04d deletes stored likes and notes; rerun with --yes\n", latest)
		return nil
	}

	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrStorage, err)
	}
	r.logger.Info("migration rolled back", "version", latest, "path", r.config.Database.Path)
	r.writePlain("✓ Rolled back %04d\n", latest)
	return nil
}
