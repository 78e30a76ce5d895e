// Package cmd holds shared construction helpers for the flowlint binaries.
package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/catalog/file"
	"github.com/fluxon/flowlint/pkg/catalog/postgresql"
	"github.com/fluxon/flowlint/pkg/catalog/redis"
)

var supportedCatalogProviders = []string{"file", "postgres", "postgresql", "redis"}

// NewCatalogStore selects a catalog backing store from the URL scheme. An
// empty or unrecognized URL falls back to the builtin seed catalog.
func NewCatalogStore(ctx context.Context, logger *slog.Logger, catalogURL string) (catalog.Store, error) {
	provider := parseCatalogProvider(catalogURL)

	switch provider {
	case "postgres", "postgresql":
		return postgresql.NewStore(ctx, logger, catalogURL)
	case "redis":
		return redis.NewStore(ctx, logger, catalogURL)
	case "file":
		return file.NewStore(catalogURL), nil
	default:
		return catalog.NewBuiltinStore(), nil
	}
}

func parseCatalogProvider(catalogURL string) string {
	parts := strings.Split(catalogURL, "://")

	provider := parts[0]
	for _, supported := range supportedCatalogProviders {
		if provider == supported {
			return provider
		}
	}

	return "builtin"
}
