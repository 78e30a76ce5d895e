// Package web provides the HTTP surface for the validation engine: validate,
// catalog lookup/search, and the gated create/update endpoints.
package web

import "github.com/fluxon/flowlint/pkg/models"

// ValidateRequest is the request body for POST /validate.
type ValidateRequest struct {
	Document            models.WorkflowDocument `json:"document"            validate:"required"`
	Profile             string                  `json:"profile"             validate:"omitempty,oneof=runtime full"`
	ValidateConnections *bool                   `json:"validateConnections,omitempty"`
	ValidateExpressions bool                    `json:"validateExpressions,omitempty"`
}

// CreateWorkflowRequest is the request body for POST /workflows.
type CreateWorkflowRequest struct {
	Document models.WorkflowDocument `json:"document" validate:"required"`
}

// UpdateWorkflowRequest is the request body for PUT /workflows/:id.
type UpdateWorkflowRequest struct {
	Document models.WorkflowDocument `json:"document" validate:"required"`
}

// VerdictResponse reports the cached validation verdict for a document.
type VerdictResponse struct {
	Validated bool `json:"validated"`
	Valid     bool `json:"valid"`
}
