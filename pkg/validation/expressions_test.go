package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxon/flowlint/pkg/models"
)

func TestScanExpressions_CleanExpressionsPass(t *testing.T) {
	doc := &models.WorkflowDocument{
		Name: "clean",
		Nodes: []models.NodeInstance{
			{
				Name: "Fetch",
				Type: "fluxon-nodes-base.httpRequest",
				Parameters: map[string]any{
					"url": "https://api.example.com/{{$json.userId}}",
					"headers": map[string]any{
						"X-Run": "{{$workflow.id}}",
					},
				},
			},
		},
	}

	assert.Empty(t, ScanExpressions(doc))
}

func TestScanExpressions_UnbalancedMarkers(t *testing.T) {
	doc := &models.WorkflowDocument{
		Name: "broken",
		Nodes: []models.NodeInstance{
			{
				Name:       "Fetch",
				Parameters: map[string]any{"url": "https://example.com/{{$json.id"},
			},
		},
	}

	issues := ScanExpressions(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, models.CodeExpressionSuspect, issues[0].Code)
	assert.Equal(t, models.SeverityInfo, issues[0].Severity, "expression findings are advisory only")
	assert.Contains(t, issues[0].Message, "unbalanced")
}

func TestScanExpressions_UnknownContextObject(t *testing.T) {
	doc := &models.WorkflowDocument{
		Name: "typo",
		Nodes: []models.NodeInstance{
			{
				Name:       "Fetch",
				Parameters: map[string]any{"url": "{{$jsonn.userId}}"},
			},
		},
	}

	issues := ScanExpressions(doc)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "$jsonn")
	assert.Contains(t, issues[0].Suggestion, "$json")
}

func TestScanExpressions_WalksNestedParameters(t *testing.T) {
	doc := &models.WorkflowDocument{
		Name: "nested",
		Nodes: []models.NodeInstance{
			{
				Name: "Set",
				Parameters: map[string]any{
					"assignments": []any{
						map[string]any{"value": "{{$bogus.thing}}"},
					},
				},
			},
		},
	}

	issues := ScanExpressions(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "Set", issues[0].NodeName)
}

func TestScanExpressions_PlainStringsIgnored(t *testing.T) {
	doc := &models.WorkflowDocument{
		Name: "plain",
		Nodes: []models.NodeInstance{
			{
				Name:       "Log",
				Parameters: map[string]any{"message": "hello $world, no markers here"},
			},
		},
	}

	assert.Empty(t, ScanExpressions(doc))
}
