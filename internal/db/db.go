package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orgball2608/story-viewer/pkg/config"
	"github.com/orgball2608/story-viewer/pkg/logger"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"

	_ "github.com/orgball2608/story-viewer/internal/migrations"
	_ "modernc.org/sqlite"
)

// Opts holds dependencies for opening the local sqlite database.
type Opts struct {
	fx.In
	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// New opens the viewer's local database, runs migrations and manages
// the connection lifecycle.
func New(opts Opts) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", opts.Config.Sqlite.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(conn, "."); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	opts.LC.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := conn.PingContext(ctx); err != nil {
					return fmt.Errorf("failed to ping sqlite: %w", err)
				}
				opts.Logger.Info("Connected to local database", "path", opts.Config.Sqlite.Path)
				return nil
			},
			OnStop: func(context.Context) error {
				return conn.Close()
			},
		},
	)

	return conn, nil
}
