// Package redis provides a Redis-backed catalog store. Entries live as JSON
// values under one key per canonical type, with a set index for search scans.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/models"
)

const (
	entryKeyPrefix = "flowlint:node_types:"
	indexKey       = "flowlint:node_types"
)

// Store serves catalog entries from Redis.
type Store struct {
	client goredis.UniversalClient
	logger *slog.Logger
}

// NewStore connects to Redis at the given URL.
func NewStore(ctx context.Context, logger *slog.Logger, redisURL string) (*Store, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := goredis.NewClient(opts)

	err = client.Ping(ctx).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Store{
		client: client,
		logger: logger.With("module", "catalog_redis"),
	}, nil
}

// Get loads one entry by canonical type.
func (s *Store) Get(ctx context.Context, canonicalType string) (*models.CatalogEntry, error) {
	data, err := s.client.Get(ctx, entryKeyPrefix+canonicalType).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get node type %s: %w", canonicalType, err)
	}

	var entry models.CatalogEntry

	err = json.Unmarshal(data, &entry)
	if err != nil {
		return nil, fmt.Errorf("failed to decode node type %s: %w", canonicalType, err)
	}

	return &entry, nil
}

// Search loads every indexed entry and applies the substring-match contract.
// The catalog holds a few hundred types at most, so a full scan is fine.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]*models.CatalogEntry, error) {
	types, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list node types: %w", err)
	}

	entries := make([]*models.CatalogEntry, 0, len(types))

	for _, canonicalType := range types {
		entry, err := s.Get(ctx, canonicalType)
		if err != nil {
			if catalog.IsNotFound(err) {
				continue // index member without a value, skip
			}

			return nil, err
		}

		entries = append(entries, entry)
	}

	return catalog.FilterEntries(entries, term, limit), nil
}

// Save upserts one entry and its index membership.
func (s *Store) Save(ctx context.Context, entry *models.CatalogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode node type %s: %w", entry.CanonicalType, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, entryKeyPrefix+entry.CanonicalType, data, 0)
	pipe.SAdd(ctx, indexKey, entry.CanonicalType)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save node type %s: %w", entry.CanonicalType, err)
	}

	return nil
}

// Close closes the Redis client.
func (s *Store) Close(_ context.Context) error {
	err := s.client.Close()
	if err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}

// HealthCheck verifies the Redis connection is healthy.
func (s *Store) HealthCheck(ctx context.Context) error {
	err := s.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}
