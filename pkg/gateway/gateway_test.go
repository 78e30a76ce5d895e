package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxon/flowlint/pkg/log"
	"github.com/fluxon/flowlint/pkg/models"
	"github.com/fluxon/flowlint/pkg/runtime"
	"github.com/fluxon/flowlint/pkg/validation"
)

func testDoc() *models.WorkflowDocument {
	return &models.WorkflowDocument{
		Name: "greet",
		Nodes: []models.NodeInstance{
			{
				Name:       "Start",
				Type:       "fluxon-nodes-base.webhook",
				Parameters: map[string]any{"path": "/greet"},
			},
		},
	}
}

func newRuntimeStub(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var workflow runtime.Workflow
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&workflow)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(workflow)
	}))
	t.Cleanup(server.Close)

	return server
}

func TestGateway_RefusesUnvalidatedDocument(t *testing.T) {
	cache := validation.NewCache(validation.DefaultCacheTTL, validation.DefaultCacheEntries)
	server := newRuntimeStub(t)
	g := New(cache, runtime.NewClient(server.URL, ""), log.WithModule("test"))

	_, err := g.Create(t.Context(), testDoc())
	assert.ErrorIs(t, err, ErrNotValidated)
}

func TestGateway_RefusesInvalidDocumentWithFullReport(t *testing.T) {
	cache := validation.NewCache(validation.DefaultCacheTTL, validation.DefaultCacheEntries)
	server := newRuntimeStub(t)
	g := New(cache, runtime.NewClient(server.URL, ""), log.WithModule("test"))

	doc := testDoc()
	report := &models.ValidationReport{
		Valid: false,
		Errors: []models.ValidationIssue{
			{Code: models.CodeMissingTrigger, Severity: models.SeverityError, Message: "no trigger"},
		},
	}
	cache.Record(doc, report)

	_, err := g.Create(t.Context(), doc)
	require.ErrorIs(t, err, ErrNotValid)

	var rejection *RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Same(t, report, rejection.Report, "rejection must carry the full issue list")
}

func TestGateway_CreatesValidatedDocument(t *testing.T) {
	cache := validation.NewCache(validation.DefaultCacheTTL, validation.DefaultCacheEntries)
	server := newRuntimeStub(t)
	g := New(cache, runtime.NewClient(server.URL, ""), log.WithModule("test"))

	doc := testDoc()
	cache.Record(doc, &models.ValidationReport{Valid: true})

	workflow, err := g.Create(t.Context(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, workflow.ID)
	assert.Equal(t, "greet", workflow.Document.Name)
}

func TestGateway_EditedDocumentMustRevalidate(t *testing.T) {
	cache := validation.NewCache(validation.DefaultCacheTTL, validation.DefaultCacheEntries)
	server := newRuntimeStub(t)
	g := New(cache, runtime.NewClient(server.URL, ""), log.WithModule("test"))

	doc := testDoc()
	cache.Record(doc, &models.ValidationReport{Valid: true})

	edited := testDoc()
	edited.Nodes[0].Parameters["path"] = "/changed"

	_, err := g.Update(t.Context(), "wf-1", edited)
	assert.ErrorIs(t, err, ErrNotValidated)
}

func TestGateway_IsValidatedAndValid(t *testing.T) {
	cache := validation.NewCache(validation.DefaultCacheTTL, validation.DefaultCacheEntries)
	server := newRuntimeStub(t)
	g := New(cache, runtime.NewClient(server.URL, ""), log.WithModule("test"))

	doc := testDoc()

	verdict := g.IsValidatedAndValid(doc)
	assert.False(t, verdict.Validated)

	cache.Record(doc, &models.ValidationReport{Valid: true})

	verdict = g.IsValidatedAndValid(doc)
	assert.True(t, verdict.Validated)
	assert.True(t, verdict.Valid)
}
