package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"propboost_backend/platform/config"
	"propboost_backend/platform/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies every pending goose migration in migrations and logs
// each version it applied.
func RunMigrations(ctx context.Context, cfg config.DatabaseConfig, migrations fs.FS, log *logger.Logger) error {
	conn, err := sql.Open("pgx", cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer conn.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, conn, migrations)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", "version", r.Source.Version, "file", r.Source.Path, "duration", r.Duration.String())
	}
	if len(results) == 0 {
		log.Info("database schema up to date")
	}
	return nil
}
