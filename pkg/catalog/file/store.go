// Package file provides a file-backed catalog store: one JSON document per
// node type under a root directory, keyed by canonical type.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/models"
)

// Store reads and writes catalog entries as JSON files. Canonical type ids
// contain dots and at-signs only, so they map onto file names directly.
type Store struct {
	root string
}

// NewStore creates a store rooted at the given directory, accepting an
// optional file:// prefix.
func NewStore(root string) *Store {
	return &Store{root: strings.Replace(root, "file://", "", 1)}
}

func (s *Store) entryPath(canonicalType string) string {
	return filepath.Join(s.root, canonicalType+".json")
}

// Get loads one entry by canonical type.
func (s *Store) Get(_ context.Context, canonicalType string) (*models.CatalogEntry, error) {
	data, err := os.ReadFile(s.entryPath(canonicalType))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("failed to read catalog entry %s: %w", canonicalType, err)
	}

	var entry models.CatalogEntry

	err = json.Unmarshal(data, &entry)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog entry %s: %w", canonicalType, err)
	}

	return &entry, nil
}

// Search scans every entry file and applies the substring-match contract.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]*models.CatalogEntry, error) {
	root := os.DirFS(s.root)

	files, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog entries: %w", err)
	}

	entries := make([]*models.CatalogEntry, 0, len(files))

	for _, file := range files {
		canonicalType := strings.TrimSuffix(file, ".json")

		entry, err := s.Get(ctx, canonicalType)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog entry %s: %w", canonicalType, err)
		}

		entries = append(entries, entry)
	}

	return catalog.FilterEntries(entries, term, limit), nil
}

// Save writes one entry, creating the root directory as needed. Used by the
// external ingestion pipeline and by tests.
func (s *Store) Save(_ context.Context, entry *models.CatalogEntry) error {
	err := os.MkdirAll(s.root, 0o755)
	if err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog entry %s: %w", entry.CanonicalType, err)
	}

	err = os.WriteFile(s.entryPath(entry.CanonicalType), data, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write catalog entry %s: %w", entry.CanonicalType, err)
	}

	return nil
}

// Close is a no-op for the file store.
func (s *Store) Close(_ context.Context) error { return nil }

// HealthCheck verifies the root directory exists.
func (s *Store) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}
