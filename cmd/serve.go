package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tareas/internal/repositories"
	"github.com/desertthunder/tareas/internal/server"
	"github.com/desertthunder/tareas/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the reference task endpoint until the context is cancelled.
//
// The database is migrated on start so a fresh path works without `setup database`.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}
	path := cmd.String("db")
	if path == "" {
		path = r.config.Database.Path
	}

	db, err := shared.NewDatabase(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger := shared.WithLogger(r.logger, "component", "server")
	store := repositories.NewTaskRepository(db)
	router := server.New(store, server.NewMetrics(), logger)

	logger.Info("serving tasks", "addr", addr, "db", path, "routes", router.Patterns())
	return server.Serve(ctx, addr, router, logger)
}
