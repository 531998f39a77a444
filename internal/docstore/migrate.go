package docstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/postgres/*.sql
var postgresMigrations embed.FS

//go:embed migrations/sqlite/*.sql
var sqliteMigrations embed.FS

// MigratePostgres применяет схему через отдельное database/sql соединение,
// так как goose работает только с database/sql.
func MigratePostgres(ctx context.Context, dsn string, logger *zap.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("не удалось открыть соединение для миграций: %w", err)
	}
	defer db.Close()
	return migrate(ctx, goose.DialectPostgres, db, postgresMigrations, "migrations/postgres", logger)
}

func MigrateSQLite(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	return migrate(ctx, goose.DialectSQLite3, db, sqliteMigrations, "migrations/sqlite", logger)
}

func migrate(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys embed.FS, dir string, logger *zap.Logger) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return fmt.Errorf("goose: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}
	for _, r := range results {
		logger.Info("Миграция применена",
			zap.String("source", r.Source.Path),
			zap.Duration("duration", r.Duration),
		)
	}
	return nil
}
