// Package gateway enforces validate-then-write: no document reaches the
// runtime unless the validation cache holds a current, valid report for its
// exact content.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fluxon/flowlint/pkg/models"
	"github.com/fluxon/flowlint/pkg/runtime"
	"github.com/fluxon/flowlint/pkg/validation"
)

var (
	// ErrNotValidated means no cached report exists for this document
	// content; the caller must run validation first (or again, after TTL).
	ErrNotValidated = errors.New("document has not been validated")

	// ErrNotValid means the cached report rejected the document.
	ErrNotValid = errors.New("document failed validation")
)

// RejectionError carries the full issue list back to the caller so a
// rejected document can be fixed in one pass, not a generic refusal.
type RejectionError struct {
	Report *models.ValidationReport
	Err    error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%v: %d errors, %d warnings",
		e.Err, len(e.Report.Errors), len(e.Report.Warnings))
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

// Gateway is the write path in front of the runtime.
type Gateway struct {
	cache  *validation.Cache
	client *runtime.Client
	logger *slog.Logger
}

// New creates a gateway over the engine's validation cache and the runtime
// client.
func New(cache *validation.Cache, client *runtime.Client, logger *slog.Logger) *Gateway {
	return &Gateway{
		cache:  cache,
		client: client,
		logger: logger.With("module", "gateway"),
	}
}

// Create persists a new workflow, generating an id. Refused unless the
// document is validated and valid.
func (g *Gateway) Create(ctx context.Context, doc *models.WorkflowDocument) (*runtime.Workflow, error) {
	err := g.requireValid(doc)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()

	workflow, err := g.client.CreateWorkflow(ctx, id, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	g.logger.InfoContext(ctx, "workflow created", "id", workflow.ID, "name", doc.Name)

	return workflow, nil
}

// Update replaces an existing workflow's document under the same gate.
func (g *Gateway) Update(ctx context.Context, id string, doc *models.WorkflowDocument) (*runtime.Workflow, error) {
	err := g.requireValid(doc)
	if err != nil {
		return nil, err
	}

	workflow, err := g.client.UpdateWorkflow(ctx, id, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to update workflow %s: %w", id, err)
	}

	g.logger.InfoContext(ctx, "workflow updated", "id", id, "name", doc.Name)

	return workflow, nil
}

// IsValidatedAndValid exposes the cached verdict without mutating anything.
func (g *Gateway) IsValidatedAndValid(doc *models.WorkflowDocument) validation.Verdict {
	return g.cache.Check(doc)
}

func (g *Gateway) requireValid(doc *models.WorkflowDocument) error {
	verdict := g.cache.Check(doc)

	if !verdict.Validated {
		return ErrNotValidated
	}

	if !verdict.Valid {
		return &RejectionError{Report: verdict.Report, Err: ErrNotValid}
	}

	return nil
}
