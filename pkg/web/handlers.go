package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/gateway"
	"github.com/fluxon/flowlint/pkg/validation"
)

// APIHandlers wires the validation engine, catalog and write gateway into
// fiber routes.
type APIHandlers struct {
	engine    *validation.Engine
	catalog   *catalog.Catalog
	gateway   *gateway.Gateway
	validator *validator.Validate
}

// NewAPIHandlers creates the handler set.
func NewAPIHandlers(
	engine *validation.Engine,
	cat *catalog.Catalog,
	gw *gateway.Gateway,
	validate *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		engine:    engine,
		catalog:   cat,
		gateway:   gw,
		validator: validate,
	}
}

// ValidateWorkflow runs the engine over a submitted document and returns the
// full report. POST /validate
func (h *APIHandlers) ValidateWorkflow(c fiber.Ctx) error {
	var req ValidateRequest

	err := c.Bind().JSON(&req)
	if err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}

	err = h.validator.Struct(&req)
	if err != nil {
		return badRequest(c, "invalid request: "+err.Error())
	}

	opts := validation.DefaultOptions()
	if req.Profile != "" {
		opts.Profile = validation.Profile(req.Profile)
	}

	if req.ValidateConnections != nil {
		opts.ValidateConnections = *req.ValidateConnections
	}

	opts.ValidateExpressions = req.ValidateExpressions

	report, err := h.engine.Run(c.Context(), &req.Document, opts)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(report)
}

// CheckWorkflow reports the cached verdict for a document without
// re-validating. POST /validate/check
func (h *APIHandlers) CheckWorkflow(c fiber.Ctx) error {
	var req ValidateRequest

	err := c.Bind().JSON(&req)
	if err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}

	verdict := h.gateway.IsValidatedAndValid(&req.Document)

	return c.JSON(VerdictResponse{Validated: verdict.Validated, Valid: verdict.Valid})
}

// GetNodeType returns the catalog entry for a canonical type.
// GET /node-types/:type
func (h *APIHandlers) GetNodeType(c fiber.Ctx) error {
	canonicalType := c.Params("type")

	entry, err := h.catalog.Lookup(c.Context(), canonicalType)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(entry)
}

// SearchNodeTypes searches the catalog. GET /node-types?q=term&limit=20
func (h *APIHandlers) SearchNodeTypes(c fiber.Ctx) error {
	term := c.Query("q")

	limit := catalog.DefaultSearchLimit

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return badRequest(c, "invalid limit: "+limitStr)
		}

		limit = parsed
	}

	entries, err := h.catalog.Search(c.Context(), term, limit)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(fiber.Map{
		"results": entries,
		"count":   len(entries),
	})
}

// CreateWorkflow persists a document through the write gateway.
// POST /workflows
func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req CreateWorkflowRequest

	err := c.Bind().JSON(&req)
	if err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}

	workflow, err := h.gateway.Create(c.Context(), &req.Document)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(workflow)
}

// HealthCheck reports API health including the catalog backing store.
// GET /health
func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	catalogCheck, ok := h.catalog.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Flowlint API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if ok {
		status = "healthy"
		message = "Flowlint API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"catalog": catalogCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

// UpdateWorkflow replaces a persisted document through the write gateway.
// PUT /workflows/:id
func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	var req UpdateWorkflowRequest

	err := c.Bind().JSON(&req)
	if err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}

	workflow, err := h.gateway.Update(c.Context(), c.Params("id"), &req.Document)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(workflow)
}
