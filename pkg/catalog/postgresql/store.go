// Package postgresql provides a PostgreSQL-backed catalog store.
package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq" // postgres driver

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/models"
)

// Store serves catalog entries from a node_types table.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore connects to the database, runs migrations and returns the store.
func NewStore(ctx context.Context, logger *slog.Logger, databaseURL string) (*Store, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{
		db:     database,
		logger: logger.With("module", "catalog_postgresql"),
	}

	migrationManager := newMigrationManager(store.logger, database, migrations())

	err = migrationManager.runMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

const selectColumns = `canonical_type, display_name, description, category, package_name,
		is_ai_tool, is_trigger, is_webhook, is_versioned, required_parameters,
		parameter_schema, current_version, min_supported_version, max_supported_version`

// Get loads one entry by canonical type.
func (s *Store) Get(ctx context.Context, canonicalType string) (*models.CatalogEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM node_types WHERE canonical_type = $1`, canonicalType)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query node type %s: %w", canonicalType, err)
	}

	return entry, nil
}

// Search matches term against type id, display name and description.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]*models.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM node_types
		WHERE canonical_type ILIKE '%' || $1 || '%'
		   OR display_name ILIKE '%' || $1 || '%'
		   OR description ILIKE '%' || $1 || '%'
		ORDER BY display_name ASC
		LIMIT $2`, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search node types: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*models.CatalogEntry, 0, limit)

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan node type row: %w", err)
		}

		entries = append(entries, entry)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate node type rows: %w", err)
	}

	return entries, nil
}

// Save upserts one entry. Used by the external ingestion pipeline.
func (s *Store) Save(ctx context.Context, entry *models.CatalogEntry) error {
	requiredJSON, err := json.Marshal(entry.RequiredParameters)
	if err != nil {
		return fmt.Errorf("failed to encode required parameters: %w", err)
	}

	var schemaJSON []byte
	if entry.ParameterSchema != nil {
		schemaJSON, err = json.Marshal(entry.ParameterSchema)
		if err != nil {
			return fmt.Errorf("failed to encode parameter schema: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO node_types (
			canonical_type, display_name, description, category, package_name,
			is_ai_tool, is_trigger, is_webhook, is_versioned, required_parameters,
			parameter_schema, current_version, min_supported_version, max_supported_version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (canonical_type) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			package_name = EXCLUDED.package_name,
			is_ai_tool = EXCLUDED.is_ai_tool,
			is_trigger = EXCLUDED.is_trigger,
			is_webhook = EXCLUDED.is_webhook,
			is_versioned = EXCLUDED.is_versioned,
			required_parameters = EXCLUDED.required_parameters,
			parameter_schema = EXCLUDED.parameter_schema,
			current_version = EXCLUDED.current_version,
			min_supported_version = EXCLUDED.min_supported_version,
			max_supported_version = EXCLUDED.max_supported_version,
			updated_at = NOW()`,
		entry.CanonicalType, entry.DisplayName, entry.Description, entry.Category,
		entry.PackageName, entry.IsAITool, entry.IsTrigger, entry.IsWebhook,
		entry.IsVersioned, requiredJSON, nullableJSON(schemaJSON),
		entry.CurrentVersion, entry.MinSupportedVersion, entry.MaxSupportedVersion)
	if err != nil {
		return fmt.Errorf("failed to upsert node type %s: %w", entry.CanonicalType, err)
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close(_ context.Context) error {
	if s.db != nil {
		err := s.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (s *Store) HealthCheck(ctx context.Context) error {
	err := s.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.CatalogEntry, error) {
	var (
		entry        models.CatalogEntry
		requiredJSON []byte
		schemaJSON   []byte
	)

	err := row.Scan(
		&entry.CanonicalType, &entry.DisplayName, &entry.Description,
		&entry.Category, &entry.PackageName, &entry.IsAITool, &entry.IsTrigger,
		&entry.IsWebhook, &entry.IsVersioned, &requiredJSON, &schemaJSON,
		&entry.CurrentVersion, &entry.MinSupportedVersion, &entry.MaxSupportedVersion)
	if err != nil {
		return nil, err
	}

	if len(requiredJSON) > 0 {
		err = json.Unmarshal(requiredJSON, &entry.RequiredParameters)
		if err != nil {
			return nil, fmt.Errorf("failed to decode required parameters: %w", err)
		}
	}

	if len(schemaJSON) > 0 {
		err = json.Unmarshal(schemaJSON, &entry.ParameterSchema)
		if err != nil {
			return nil, fmt.Errorf("failed to decode parameter schema: %w", err)
		}
	}

	return &entry, nil
}

func nullableJSON(data []byte) any {
	if len(data) == 0 {
		return nil
	}

	return data
}
