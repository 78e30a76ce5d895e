package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxon/flowlint/pkg/models"
)

func httpEntry() *models.CatalogEntry {
	return &models.CatalogEntry{
		CanonicalType:      "fluxon-nodes-base.httpRequest",
		DisplayName:        "HTTP Request",
		Category:           models.CategoryAction,
		RequiredParameters: []string{"url", "options"},
	}
}

func TestValidateParameters_MissingPath(t *testing.T) {
	node := &models.NodeInstance{
		Name:       "Fetch",
		Type:       "fluxon-nodes-base.httpRequest",
		Parameters: map[string]any{"url": "https://example.com"},
	}

	issues := ValidateParameters(node, httpEntry())

	require.Len(t, issues, 1)
	assert.Equal(t, models.CodeMissingRequiredField, issues[0].Code)
	assert.Equal(t, models.SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Message, `"options"`)
	assert.Contains(t, issues[0].Suggestion, `"options"`)
}

func TestValidateParameters_NullValueCountsAsMissing(t *testing.T) {
	node := &models.NodeInstance{
		Name: "Fetch",
		Parameters: map[string]any{
			"url":     "https://example.com",
			"options": nil,
		},
	}

	issues := ValidateParameters(node, httpEntry())
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, `"options"`)
}

func TestValidateParameters_AllPresent(t *testing.T) {
	node := &models.NodeInstance{
		Name: "Fetch",
		Parameters: map[string]any{
			"url":     "https://example.com",
			"options": map[string]any{},
		},
	}

	assert.Empty(t, ValidateParameters(node, httpEntry()))
}

func TestValidateParameters_NestedPath(t *testing.T) {
	entry := &models.CatalogEntry{
		CanonicalType:      "fluxon-nodes-base.scheduleTrigger",
		RequiredParameters: []string{"rule.interval"},
	}

	node := &models.NodeInstance{
		Name:       "Every Morning",
		Parameters: map[string]any{"rule": map[string]any{}},
	}

	issues := ValidateParameters(node, entry)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, `"rule.interval"`)
	assert.Contains(t, issues[0].Suggestion, `{"rule":{"interval":"..."}}`)

	node.Parameters = map[string]any{"rule": map[string]any{"interval": "day"}}
	assert.Empty(t, ValidateParameters(node, entry))
}

func TestValidateParameters_EveryMissingPathReported(t *testing.T) {
	node := &models.NodeInstance{Name: "Fetch", Parameters: nil}

	issues := ValidateParameters(node, httpEntry())
	assert.Len(t, issues, 2, "one issue per missing path, no short-circuit")
}

func TestValidateParameters_SchemaMismatchIsWarning(t *testing.T) {
	entry := &models.CatalogEntry{
		CanonicalType:      "fluxon-nodes-base.httpRequest",
		RequiredParameters: []string{"url"},
		ParameterSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"url":    map[string]any{"type": "string"},
				"method": map[string]any{"type": "string", "enum": []any{"GET", "POST"}},
			},
		},
	}

	node := &models.NodeInstance{
		Name: "Fetch",
		Parameters: map[string]any{
			"url":    "https://example.com",
			"method": "TELEPORT",
		},
	}

	issues := ValidateParameters(node, entry)
	require.Len(t, issues, 1)
	assert.Equal(t, models.CodeParameterSchemaMismatch, issues[0].Code)
	assert.Equal(t, models.SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "method")
}
