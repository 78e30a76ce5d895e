// Package catalog provides lookup and search over the node-type catalog,
// with an in-memory TTL cache shadowing a persistent backing store.
package catalog

import (
	"context"
	"errors"

	"github.com/fluxon/flowlint/pkg/models"
)

var (
	// ErrNotFound is returned when no entry exists for a canonical type.
	ErrNotFound = errors.New("node type not found in catalog")

	// ErrStoreUnavailable indicates the backing store could not be reached.
	// This is an infrastructure failure and must abort a validation run; it
	// is never reported as a per-node issue.
	ErrStoreUnavailable = errors.New("catalog store unavailable")
)

// IsNotFound checks whether err is a catalog miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStoreUnavailable checks whether err is a backing-store failure.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// Store is the persistent backing store for catalog entries. Get returns
// ErrNotFound for unknown types and wraps infrastructure failures in
// ErrStoreUnavailable.
type Store interface {
	Get(ctx context.Context, canonicalType string) (*models.CatalogEntry, error)
	Search(ctx context.Context, term string, limit int) ([]*models.CatalogEntry, error)
	Close(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}
