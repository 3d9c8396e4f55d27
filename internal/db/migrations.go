/*-------------------------------------------------------------------------
 *
 * migrations.go
 *    Schema migration runner
 *
 * Applies .sql files from a migrations directory in lexical order and
 * records applied versions in shopsmart.schema_migrations.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/db/migrations.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/vinovator/shopsmart-retail-agent/internal/metrics"
)

const migrationsTableQuery = `
	CREATE SCHEMA IF NOT EXISTS shopsmart;
	CREATE TABLE IF NOT EXISTS shopsmart.schema_migrations (
		version    text PRIMARY KEY,
		applied_at timestamptz NOT NULL DEFAULT NOW()
	)`

/* MigrationRunner applies SQL migrations from a directory */
type MigrationRunner struct {
	db  *sqlx.DB
	dir string
}

/* NewMigrationRunner creates a migration runner for the given directory */
func NewMigrationRunner(db *sqlx.DB, dir string) (*MigrationRunner, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("migrations directory not accessible: dir='%s', error=%w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("migrations path is not a directory: dir='%s'", dir)
	}
	return &MigrationRunner{db: db, dir: dir}, nil
}

/* Run applies all pending migrations in lexical order */
func (m *MigrationRunner) Run(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, migrationsTableQuery); err != nil {
		return fmt.Errorf("failed to ensure migrations table: %w", err)
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: dir='%s', error=%w", m.dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	applied := make(map[string]bool)
	var versions []string
	if err := m.db.SelectContext(ctx, &versions, `SELECT version FROM shopsmart.schema_migrations`); err != nil {
		return fmt.Errorf("failed to load applied migrations: %w", err)
	}
	for _, v := range versions {
		applied[v] = true
	}

	for _, name := range files {
		if applied[name] {
			continue
		}

		sqlBytes, err := os.ReadFile(filepath.Join(m.dir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration: file='%s', error=%w", name, err)
		}

		tx, err := m.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: file='%s', error=%w", name, err)
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration failed: file='%s', error=%w", name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO shopsmart.schema_migrations (version) VALUES ($1)`, name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration: file='%s', error=%w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration: file='%s', error=%w", name, err)
		}

		metrics.InfoWithContext(ctx, "Migration applied", map[string]interface{}{
			"file": name,
		})
	}

	return nil
}
