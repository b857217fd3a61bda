package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"wiki-quiz/internal/logger"
)

// Migration directions.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// MigrationFiles lists the migration files in dir for direction, in the order
// they must run: ascending for up, descending for down.
func MigrationFiles(dir, direction string) ([]string, error) {
	if direction != DirectionUp && direction != DirectionDown {
		return nil, fmt.Errorf("unknown migration direction %q", direction)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	suffix := "." + direction + ".sql"
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
			files = append(files, e.Name())
		}
	}

	sort.Strings(files)
	if direction == DirectionDown {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}
	return files, nil
}

// RunMigrations executes the migrations in dir. Each file holds a single
// statement; a trailing semicolon is stripped because Oracle rejects it.
func RunMigrations(ctx context.Context, db *sql.DB, dir, direction string) error {
	l := logger.Get()

	files, err := MigrationFiles(dir, direction)
	if err != nil {
		return err
	}

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		stmt := strings.TrimSuffix(strings.TrimSpace(string(content)), ";")
		if stmt == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}
		l.Info("Executed migration", zap.String("file", name))
	}

	l.Info("Migrations completed successfully", zap.String("direction", direction), zap.Int("count", len(files)))
	return nil
}

// NewMigrateOracleDB opens a plain database/sql connection for migrations.
func NewMigrateOracleDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}
	return db, nil
}
