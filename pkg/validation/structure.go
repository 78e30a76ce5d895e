package validation

import (
	"fmt"

	"github.com/fluxon/flowlint/pkg/models"
	"github.com/fluxon/flowlint/pkg/resolver"
)

// Complexity thresholds for the statistics block. A coarse reporting aid,
// not a correctness check.
const (
	SimpleMaxNodes        = 3
	SimpleMaxConnections  = 2
	ComplexMinNodes       = 10
	ComplexMinConnections = 12
)

// ValidateStructure checks the node/connection graph: name uniqueness,
// trigger presence, referential integrity of connection targets and orphan
// detection. All checks run to completion; every applicable issue for the
// document is collected in one pass.
//
// Cycle detection is deliberately absent: the target runtime tolerates
// cycles on the AI port kinds (tool, model and memory attachments are not a
// DAG requirement), so naive rejection would produce false positives.
func ValidateStructure(
	doc *models.WorkflowDocument,
	resolutions map[string]*resolver.Resolution,
) ([]models.ValidationIssue, models.Statistics) {
	var issues []models.ValidationIssue

	nodeNames := make(map[string]int, len(doc.Nodes))
	for _, node := range doc.Nodes {
		nodeNames[node.Name]++
	}

	// One issue per repeated name, however many times it repeats.
	for _, node := range doc.Nodes {
		if nodeNames[node.Name] > 1 {
			issues = append(issues, models.ValidationIssue{
				Code:     models.CodeDuplicateNodeName,
				Severity: models.SeverityError,
				NodeName: node.Name,
				Message:  fmt.Sprintf("node name %q is used by %d nodes", node.Name, nodeNames[node.Name]),
				Suggestion: "rename the duplicates; connection references are by node name, " +
					"so duplicates make the graph ambiguous",
			})
			nodeNames[node.Name] = 1 // emitted, suppress repeats
		}
	}

	isTrigger := func(name string) bool {
		resolution := resolutions[name]

		return resolution != nil && resolution.Confident && resolution.Entry.IsTrigger
	}

	triggerCount := 0

	for _, node := range doc.Nodes {
		if isTrigger(node.Name) {
			triggerCount++
		}
	}

	switch {
	case triggerCount == 0:
		issues = append(issues, models.ValidationIssue{
			Code:       models.CodeMissingTrigger,
			Severity:   models.SeverityError,
			Message:    "workflow has no trigger node and can never start",
			Suggestion: "add a trigger such as fluxon-nodes-base.webhook or fluxon-nodes-base.scheduleTrigger",
		})
	case triggerCount > 1:
		issues = append(issues, models.ValidationIssue{
			Code:     models.CodeMultipleTriggers,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("workflow has %d trigger nodes; only one will usually be active", triggerCount),
		})
	}

	validConnections := 0
	invalidConnections := 0
	inDegree := make(map[string]int, len(doc.Nodes))

	for sourceName, ports := range doc.Connections {
		for _, groups := range ports {
			for _, group := range groups {
				for _, target := range group {
					if _, exists := nodeNames[target.Node]; !exists {
						invalidConnections++

						issues = append(issues, models.ValidationIssue{
							Code:     models.CodeInvalidConnectionTarget,
							Severity: models.SeverityError,
							NodeName: sourceName,
							Message: fmt.Sprintf("connection from %q references node %q, which does not exist",
								sourceName, target.Node),
						})

						continue
					}

					validConnections++
					inDegree[target.Node]++
				}
			}
		}
	}

	orphanedNodes := 0

	for _, node := range doc.Nodes {
		if inDegree[node.Name] > 0 || isTrigger(node.Name) {
			continue
		}

		orphanedNodes++

		issues = append(issues, models.ValidationIssue{
			Code:       models.CodeOrphanedNode,
			Severity:   models.SeverityWarning,
			NodeName:   node.Name,
			Message:    fmt.Sprintf("node %q has no incoming connection and is not a trigger", node.Name),
			Suggestion: "connect it to the graph or remove it",
		})
	}

	stats := models.Statistics{
		TotalNodes:         len(doc.Nodes),
		TriggerNodes:       triggerCount,
		ValidConnections:   validConnections,
		InvalidConnections: invalidConnections,
		OrphanedNodes:      orphanedNodes,
		Complexity:         complexity(len(doc.Nodes), validConnections+invalidConnections),
	}

	return issues, stats
}

func complexity(nodes, connections int) models.Complexity {
	switch {
	case nodes <= SimpleMaxNodes && connections <= SimpleMaxConnections:
		return models.ComplexitySimple
	case nodes >= ComplexMinNodes || connections >= ComplexMinConnections:
		return models.ComplexityComplex
	default:
		return models.ComplexityMedium
	}
}
