package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/gateway"
	"github.com/fluxon/flowlint/pkg/log"
	"github.com/fluxon/flowlint/pkg/models"
	"github.com/fluxon/flowlint/pkg/policy"
	"github.com/fluxon/flowlint/pkg/resolver"
	"github.com/fluxon/flowlint/pkg/runtime"
	"github.com/fluxon/flowlint/pkg/validation"
	"github.com/fluxon/flowlint/pkg/web"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := log.WithModule("test")
	cat := catalog.New(catalog.NewBuiltinStore(), logger)
	res := resolver.New(cat, logger)
	engine := validation.NewEngine(res, policy.New(policy.ModeStrict), logger)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var workflow runtime.Workflow
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&workflow)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(workflow)
	}))
	t.Cleanup(server.Close)

	gw := gateway.New(engine.Cache(), runtime.NewClient(server.URL, ""), logger)

	handlers := web.NewAPIHandlers(engine, cat, gw, validator.New(validator.WithRequiredStructEnabled()))

	app := fiber.New()

	v := app.Group("/validate")
	v.Post("/", handlers.ValidateWorkflow)
	v.Post("/check", handlers.CheckWorkflow)

	n := app.Group("/node-types")
	n.Get("/", handlers.SearchNodeTypes)
	n.Get("/:type", handlers.GetNodeType)

	w := app.Group("/workflows")
	w.Post("/", handlers.CreateWorkflow)
	w.Put("/:id", handlers.UpdateWorkflow)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func validDocument() models.WorkflowDocument {
	return models.WorkflowDocument{
		Name: "greeting",
		Nodes: []models.NodeInstance{
			{
				Name:       "Start",
				Type:       "fluxon-nodes-base.webhook",
				Parameters: map[string]any{"path": "/greet"},
			},
			{
				Name:       "Shape",
				Type:       "fluxon-nodes-base.set",
				Parameters: map[string]any{"assignments": map[string]any{"greeting": "hello"}},
			},
		},
		Connections: models.Connections{
			"Start": {
				models.PortKindMain: {{{Node: "Shape", Type: models.PortKindMain, Index: 0}}},
			},
		},
	}
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func decodeReport(t *testing.T, resp *http.Response) models.ValidationReport {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var report models.ValidationReport

	err = json.Unmarshal(body, &report)
	require.NoError(t, err)

	return report
}

func TestValidateWorkflow_ValidDocument(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, "/validate/", web.ValidateRequest{Document: validDocument()})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	report := decodeReport(t, resp)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 2, report.Statistics.TotalNodes)
}

func TestValidateWorkflow_MissingRequiredParameter(t *testing.T) {
	app := setupTestApp(t)

	doc := validDocument()
	doc.Nodes[1].Parameters = map[string]any{}

	resp := postJSON(t, app, "/validate/", web.ValidateRequest{Document: doc})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	report := decodeReport(t, resp)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, models.CodeMissingRequiredField, report.Errors[0].Code)
	assert.Equal(t, "Shape", report.Errors[0].NodeName)
}

func TestValidateWorkflow_MalformedBody(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/validate/", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateWorkflow_RejectsUnknownProfile(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, "/validate/", web.ValidateRequest{
		Document: validDocument(),
		Profile:  "exhaustive",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateWorkflow_FullProfileScores(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, "/validate/", web.ValidateRequest{
		Document: validDocument(),
		Profile:  string(validation.ProfileFull),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	report := decodeReport(t, resp)
	require.NotNil(t, report.SemanticScore)
	assert.Equal(t, 100, *report.SemanticScore)
	assert.Equal(t, "excellent", report.ScoreBand)
}

func TestGetNodeType(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/node-types/fluxon-nodes-base.httpRequest", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var entry models.CatalogEntry

	err = json.Unmarshal(body, &entry)
	require.NoError(t, err)
	assert.Equal(t, "fluxon-nodes-base.httpRequest", entry.CanonicalType)
	assert.Equal(t, []string{"url", "options"}, entry.RequiredParameters)
}

func TestGetNodeType_NotFound(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/node-types/fluxon-nodes-base.nope", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchNodeTypes(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/node-types/?q=http&limit=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result struct {
		Results []models.CatalogEntry `json:"results"`
		Count   int                   `json:"count"`
	}

	err = json.Unmarshal(body, &result)
	require.NoError(t, err)
	assert.NotZero(t, result.Count)

	for _, entry := range result.Results {
		assert.NotEmpty(t, entry.CanonicalType)
	}
}

func TestSearchNodeTypes_InvalidLimit(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/node-types/?q=http&limit=many", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateWorkflow_RefusesUnvalidatedDocument(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, "/workflows/", web.CreateWorkflowRequest{Document: validDocument()})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateWorkflow_AcceptsValidatedDocument(t *testing.T) {
	app := setupTestApp(t)
	doc := validDocument()

	resp := postJSON(t, app, "/validate/", web.ValidateRequest{Document: doc})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/workflows/", web.CreateWorkflowRequest{Document: doc})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var workflow runtime.Workflow

	err = json.Unmarshal(body, &workflow)
	require.NoError(t, err)
	assert.NotEmpty(t, workflow.ID)
	assert.Equal(t, doc.Name, workflow.Document.Name)
}

func TestCreateWorkflow_RefusesInvalidDocumentWithReport(t *testing.T) {
	app := setupTestApp(t)

	doc := validDocument()
	doc.Nodes[1].Parameters = map[string]any{}

	resp := postJSON(t, app, "/validate/", web.ValidateRequest{Document: doc})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/workflows/", web.CreateWorkflowRequest{Document: doc})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var rejection struct {
		Type   string                  `json:"type"`
		Report models.ValidationReport `json:"report"`
	}

	err = json.Unmarshal(body, &rejection)
	require.NoError(t, err)
	assert.Equal(t, "invalid_document", rejection.Type)
	assert.NotEmpty(t, rejection.Report.Errors)
}

func TestCheckWorkflow_VerdictLifecycle(t *testing.T) {
	app := setupTestApp(t)
	doc := validDocument()

	resp := postJSON(t, app, "/validate/check", web.ValidateRequest{Document: doc})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var verdict web.VerdictResponse

	err = json.Unmarshal(body, &verdict)
	require.NoError(t, err)
	assert.False(t, verdict.Validated)

	resp = postJSON(t, app, "/validate/", web.ValidateRequest{Document: doc})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/validate/check", web.ValidateRequest{Document: doc})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)

	err = json.Unmarshal(body, &verdict)
	require.NoError(t, err)
	assert.True(t, verdict.Validated)
	assert.True(t, verdict.Valid)
}

func TestHealthCheck(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
