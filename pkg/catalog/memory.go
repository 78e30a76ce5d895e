package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fluxon/flowlint/pkg/models"
)

// MemoryStore is an in-process Store, used for tests and for serving the
// built-in seed without external infrastructure.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*models.CatalogEntry
}

// NewMemoryStore creates a store holding the given entries.
func NewMemoryStore(entries ...*models.CatalogEntry) *MemoryStore {
	store := &MemoryStore{entries: make(map[string]*models.CatalogEntry)}
	for _, entry := range entries {
		store.entries[entry.CanonicalType] = entry
	}

	return store
}

// Put inserts or replaces an entry.
func (s *MemoryStore) Put(entry *models.CatalogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.CanonicalType] = entry
}

func (s *MemoryStore) Get(_ context.Context, canonicalType string) (*models.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[canonicalType]
	if !ok {
		return nil, ErrNotFound
	}

	return entry, nil
}

func (s *MemoryStore) Search(_ context.Context, term string, limit int) ([]*models.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*models.CatalogEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		all = append(all, entry)
	}

	return FilterEntries(all, term, limit), nil
}

func (s *MemoryStore) Close(_ context.Context) error { return nil }

func (s *MemoryStore) HealthCheck(_ context.Context) error { return nil }

// FilterEntries applies the catalog search contract to an entry slice:
// case-insensitive substring match over type id, display name and
// description, ordered by display name, truncated to limit.
func FilterEntries(entries []*models.CatalogEntry, term string, limit int) []*models.CatalogEntry {
	needle := strings.ToLower(term)

	matched := make([]*models.CatalogEntry, 0, limit)

	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.CanonicalType), needle) ||
			strings.Contains(strings.ToLower(entry.DisplayName), needle) ||
			strings.Contains(strings.ToLower(entry.Description), needle) {
			matched = append(matched, entry)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].DisplayName < matched[j].DisplayName
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}

	return matched
}
