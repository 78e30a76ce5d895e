// Package validation implements the workflow document validation engine:
// parameter checks, structural graph checks, semantic scoring and the
// orchestrator that merges them into one report.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/fluxon/flowlint/pkg/models"
)

// ValidateParameters checks one node's declared parameters against the
// minimum required shape its catalog entry records. Every missing or null
// required path yields its own issue; nothing short-circuits.
//
// This is the highest-value check in the engine: a document can have a type
// and a name on every node and still fail to load in the runtime because a
// structural field the runtime's editor injects by default was omitted.
func ValidateParameters(node *models.NodeInstance, entry *models.CatalogEntry) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for _, path := range entry.RequiredParameters {
		if hasParameterPath(node.Parameters, path) {
			continue
		}

		issues = append(issues, models.ValidationIssue{
			Code:     models.CodeMissingRequiredField,
			Severity: models.SeverityError,
			NodeName: node.Name,
			Message: fmt.Sprintf("node %q (%s) is missing required parameter %q",
				node.Name, entry.CanonicalType, path),
			Suggestion: fmt.Sprintf("add the minimal parameter shape: %s", minimalShape(path)),
		})
	}

	issues = append(issues, validateParameterSchema(node, entry)...)

	return issues
}

// validateParameterSchema runs the catalog-provided JSON schema over the
// node's parameters when the entry carries one. Schema findings are warnings:
// the required-path check above owns hard failures, and ingested schemas can
// lag behind the runtime.
func validateParameterSchema(node *models.NodeInstance, entry *models.CatalogEntry) []models.ValidationIssue {
	if entry.ParameterSchema == nil {
		return nil
	}

	parameters := node.Parameters
	if parameters == nil {
		parameters = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(entry.ParameterSchema),
		gojsonschema.NewGoLoader(parameters),
	)
	if err != nil {
		// A malformed ingested schema is a catalog defect, not a document one.
		return []models.ValidationIssue{{
			Code:     models.CodeParameterSchemaMismatch,
			Severity: models.SeverityInfo,
			NodeName: node.Name,
			Message: fmt.Sprintf("parameter schema for %s could not be evaluated: %v",
				entry.CanonicalType, err),
		}}
	}

	var issues []models.ValidationIssue

	for _, schemaErr := range result.Errors() {
		issues = append(issues, models.ValidationIssue{
			Code:     models.CodeParameterSchemaMismatch,
			Severity: models.SeverityWarning,
			NodeName: node.Name,
			Message: fmt.Sprintf("parameter %s: %s",
				schemaErr.Field(), schemaErr.Description()),
		})
	}

	return issues
}

// hasParameterPath dot-walks the parameter tree; a path counts as present
// only when every segment exists and the leaf is non-nil.
func hasParameterPath(parameters map[string]any, path string) bool {
	current := any(parameters)

	for _, segment := range strings.Split(path, ".") {
		tree, ok := current.(map[string]any)
		if !ok {
			return false
		}

		current, ok = tree[segment]
		if !ok {
			return false
		}
	}

	return current != nil
}

// minimalShape renders the smallest parameter object containing the path.
func minimalShape(path string) string {
	segments := strings.Split(path, ".")

	shape := map[string]any{segments[len(segments)-1]: "..."}
	for i := len(segments) - 2; i >= 0; i-- {
		shape = map[string]any{segments[i]: shape}
	}

	rendered, err := json.Marshal(shape)
	if err != nil {
		return path
	}

	return string(rendered)
}
