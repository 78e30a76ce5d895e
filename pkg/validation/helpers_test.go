package validation

import (
	"testing"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/log"
	"github.com/fluxon/flowlint/pkg/models"
	"github.com/fluxon/flowlint/pkg/policy"
	"github.com/fluxon/flowlint/pkg/resolver"
)

func newTestEngine(t *testing.T, mode policy.Mode) *Engine {
	t.Helper()

	service := catalog.New(catalog.NewBuiltinStore(), log.WithModule("test"))

	return NewEngine(
		resolver.New(service, log.WithModule("test")),
		policy.New(mode),
		log.WithModule("test"),
	)
}

func resolveAllFor(t *testing.T, doc *models.WorkflowDocument) map[string]*resolver.Resolution {
	t.Helper()

	service := catalog.New(catalog.NewBuiltinStore(), log.WithModule("test"))
	res := resolver.New(service, log.WithModule("test"))

	resolutions := make(map[string]*resolver.Resolution, len(doc.Nodes))

	for i := range doc.Nodes {
		node := &doc.Nodes[i]

		resolution, err := res.Resolve(t.Context(), node.Type)
		if err != nil {
			continue
		}

		resolutions[node.Name] = resolution
	}

	return resolutions
}

func triggerNode(name string) models.NodeInstance {
	return models.NodeInstance{
		ID:         name + "-id",
		Name:       name,
		Type:       "fluxon-nodes-base.webhook",
		Position:   [2]float64{0, 0},
		Parameters: map[string]any{"path": "/hook"},
	}
}

func httpNode(name string) models.NodeInstance {
	return models.NodeInstance{
		ID:       name + "-id",
		Name:     name,
		Type:     "fluxon-nodes-base.httpRequest",
		Position: [2]float64{200, 0},
		Parameters: map[string]any{
			"url":     "https://api.example.com",
			"options": map[string]any{},
		},
	}
}

func codeNode(name, source string) models.NodeInstance {
	return models.NodeInstance{
		ID:         name + "-id",
		Name:       name,
		Type:       "fluxon-nodes-base.code",
		Position:   [2]float64{400, 0},
		Parameters: map[string]any{"jsCode": source},
	}
}

func mainConnection(source, target string) models.Connections {
	return models.Connections{
		source: {
			models.PortKindMain: {{{Node: target, Type: models.PortKindMain, Index: 0}}},
		},
	}
}

func issuesWithCode(issues []models.ValidationIssue, code string) []models.ValidationIssue {
	var matched []models.ValidationIssue

	for _, issue := range issues {
		if issue.Code == code {
			matched = append(matched, issue)
		}
	}

	return matched
}
