package file

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/models"
)

func seedStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore(t.TempDir())

	entries := []*models.CatalogEntry{
		{
			CanonicalType: "fluxon-nodes-base.httpRequest",
			DisplayName:   "HTTP Request",
			Description:   "Make HTTP requests",
			Category:      models.CategoryAction,
		},
		{
			CanonicalType: "fluxon-nodes-base.webhook",
			DisplayName:   "Webhook",
			Description:   "Receive HTTP callbacks",
			Category:      models.CategoryTrigger,
			IsTrigger:     true,
			IsWebhook:     true,
		},
	}

	for _, entry := range entries {
		require.NoError(t, store.Save(t.Context(), entry))
	}

	return store
}

func TestFileStore_SaveAndGet(t *testing.T) {
	store := seedStore(t)

	entry, err := store.Get(t.Context(), "fluxon-nodes-base.webhook")
	require.NoError(t, err)
	assert.Equal(t, "Webhook", entry.DisplayName)
	assert.True(t, entry.IsTrigger)
}

func TestFileStore_GetMissingEntry(t *testing.T) {
	store := seedStore(t)

	_, err := store.Get(t.Context(), "fluxon-nodes-base.nope")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestFileStore_Search(t *testing.T) {
	store := seedStore(t)

	results, err := store.Search(t.Context(), "http", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Display-name lexical order.
	assert.Equal(t, "fluxon-nodes-base.httpRequest", results[0].CanonicalType)
	assert.Equal(t, "fluxon-nodes-base.webhook", results[1].CanonicalType)
}

func TestFileStore_SearchHonorsLimit(t *testing.T) {
	store := seedStore(t)

	results, err := store.Search(t.Context(), "http", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestFileStore_StripsFileScheme(t *testing.T) {
	dir := t.TempDir()
	store := NewStore("file://" + dir)

	require.NoError(t, store.Save(t.Context(), &models.CatalogEntry{
		CanonicalType: "fluxon-nodes-base.set",
		DisplayName:   "Edit Fields",
	}))

	assert.FileExists(t, filepath.Join(dir, "fluxon-nodes-base.set.json"))
}

func TestFileStore_HealthCheck(t *testing.T) {
	store := seedStore(t)
	assert.NoError(t, store.HealthCheck(t.Context()))

	missing := NewStore(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, missing.HealthCheck(t.Context()))
}
