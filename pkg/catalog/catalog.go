package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fluxon/flowlint/pkg/models"
	"github.com/fluxon/flowlint/pkg/ttlcache"
)

// Cache defaults. Lookups are hot and entries change rarely, so the lookup
// cache outlives the search cache.
const (
	DefaultLookupTTL     = 10 * time.Minute
	DefaultLookupEntries = 2048
	DefaultSearchTTL     = 2 * time.Minute
	DefaultSearchEntries = 256
	DefaultSearchLimit   = 20
)

// Catalog serves node-type metadata from two independent TTL caches over a
// backing store. A cache miss always falls through to the store.
type Catalog struct {
	store       Store
	logger      *slog.Logger
	lookupCache *ttlcache.Cache[string, *models.CatalogEntry]
	searchCache *ttlcache.Cache[string, []*models.CatalogEntry]
}

// New creates a catalog over the given store with default cache settings.
func New(store Store, logger *slog.Logger) *Catalog {
	return &Catalog{
		store:       store,
		logger:      logger.With("module", "catalog"),
		lookupCache: ttlcache.New[string, *models.CatalogEntry](DefaultLookupTTL, DefaultLookupEntries),
		searchCache: ttlcache.New[string, []*models.CatalogEntry](DefaultSearchTTL, DefaultSearchEntries),
	}
}

// Lookup returns the entry for a canonical type. Returns ErrNotFound for
// unknown types and ErrStoreUnavailable when the store cannot be reached.
func (c *Catalog) Lookup(ctx context.Context, canonicalType string) (*models.CatalogEntry, error) {
	if entry, ok := c.lookupCache.Get(canonicalType); ok {
		return entry, nil
	}

	entry, err := c.store.Get(ctx, canonicalType)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	c.lookupCache.Set(canonicalType, entry)

	return entry, nil
}

// Search returns up to limit entries whose type id, display name or
// description contains term, ties broken by display-name lexical order.
func (c *Catalog) Search(ctx context.Context, term string, limit int) ([]*models.CatalogEntry, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	key := fmt.Sprintf("%s|%d", strings.ToLower(term), limit)
	if results, ok := c.searchCache.Get(key); ok {
		return results, nil
	}

	results, err := c.store.Search(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	c.searchCache.Set(key, results)
	c.logger.Debug("catalog search", "term", term, "results", len(results))

	return results, nil
}

// InvalidateAll drops both caches; the next reads repopulate from the store.
func (c *Catalog) InvalidateAll() {
	c.lookupCache.Purge()
	c.searchCache.Purge()
}

// HealthCheck reports whether the backing store is reachable.
func (c *Catalog) HealthCheck(ctx context.Context) (string, bool) {
	err := c.store.HealthCheck(ctx)
	if err != nil {
		return err.Error(), false
	}

	return "ok", true
}
