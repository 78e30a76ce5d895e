package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

const currentSchemaVersion = 1

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS node_types (
				canonical_type TEXT PRIMARY KEY,
				display_name TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL DEFAULT '',
				package_name TEXT NOT NULL DEFAULT '',
				is_ai_tool BOOLEAN NOT NULL DEFAULT FALSE,
				is_trigger BOOLEAN NOT NULL DEFAULT FALSE,
				is_webhook BOOLEAN NOT NULL DEFAULT FALSE,
				is_versioned BOOLEAN NOT NULL DEFAULT FALSE,
				required_parameters JSONB NOT NULL DEFAULT '[]',
				parameter_schema JSONB,
				current_version DOUBLE PRECISION NOT NULL DEFAULT 1,
				min_supported_version DOUBLE PRECISION NOT NULL DEFAULT 1,
				max_supported_version DOUBLE PRECISION NOT NULL DEFAULT 1,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_node_types_display_name ON node_types (display_name);
			CREATE INDEX IF NOT EXISTS idx_node_types_category ON node_types (category);
		`,
	}
}

// migrationManager handles schema creation and upgrades for the catalog table.
type migrationManager struct {
	db         *sql.DB
	logger     *slog.Logger
	migrations map[int]string
}

func newMigrationManager(logger *slog.Logger, db *sql.DB, migrations map[int]string) *migrationManager {
	return &migrationManager{
		db:         db,
		logger:     logger,
		migrations: migrations,
	}
}

func (m *migrationManager) runMigrations(ctx context.Context) error {
	err := m.createMigrationsTable(ctx)
	if err != nil {
		return err
	}

	currentVersion, err := m.currentSchemaVersion(ctx)
	if err != nil {
		return err
	}

	if currentVersion < currentSchemaVersion {
		err = m.applyMigrations(ctx, currentVersion)
		if err != nil {
			return err
		}
	}

	m.logger.InfoContext(ctx, "Catalog migrations completed", "version", currentSchemaVersion)

	return nil
}

func (m *migrationManager) createMigrationsTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	return nil
}

func (m *migrationManager) currentSchemaVersion(ctx context.Context) (int, error) {
	var version int

	err := m.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to query current schema version: %w", err)
	}

	return version, nil
}

func (m *migrationManager) applyMigrations(ctx context.Context, fromVersion int) error {
	for version := fromVersion + 1; version <= currentSchemaVersion; version++ {
		migration, ok := m.migrations[version]
		if !ok {
			return fmt.Errorf("missing migration for version %d", version)
		}

		m.logger.InfoContext(ctx, "Applying migration", "version", version)

		transaction, err := m.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", version, err)
		}

		_, err = transaction.ExecContext(ctx, migration)
		if err != nil {
			_ = transaction.Rollback()

			return fmt.Errorf("failed to execute migration %d: %w", version, err)
		}

		_, err = transaction.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version)
		if err != nil {
			_ = transaction.Rollback()

			return fmt.Errorf("failed to record migration %d: %w", version, err)
		}

		err = transaction.Commit()
		if err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", version, err)
		}
	}

	return nil
}
