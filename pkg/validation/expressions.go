package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fluxon/flowlint/pkg/models"
)

// Expression syntax is runtime-specific and false positives are costly, so
// this scan is best-effort and strictly advisory: findings are info-severity
// and never block validity.

var expressionMarker = regexp.MustCompile(`\{\{[^}]*\}\}`)

// knownExpressionRoots are the context objects the runtime exposes inside
// {{ ... }} expressions.
var knownExpressionRoots = []string{"$json", "$node", "$input", "$env", "$now", "$workflow"}

// ScanExpressions walks every node's parameter tree and flags template
// expressions that look malformed: unbalanced markers or references to
// context objects the runtime does not expose.
func ScanExpressions(doc *models.WorkflowDocument) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for i := range doc.Nodes {
		node := &doc.Nodes[i]

		walkStrings(node.Parameters, func(value string) {
			issues = append(issues, scanValue(node.Name, value)...)
		})
	}

	return issues
}

func scanValue(nodeName, value string) []models.ValidationIssue {
	if !strings.Contains(value, "{{") && !strings.Contains(value, "}}") {
		return nil
	}

	var issues []models.ValidationIssue

	if strings.Count(value, "{{") != strings.Count(value, "}}") {
		issues = append(issues, models.ValidationIssue{
			Code:     models.CodeExpressionSuspect,
			Severity: models.SeverityInfo,
			NodeName: nodeName,
			Message:  fmt.Sprintf("expression in %q has unbalanced {{ }} markers", nodeName),
		})

		return issues
	}

	for _, expr := range expressionMarker.FindAllString(value, -1) {
		for _, root := range referencedRoots(expr) {
			if !isKnownRoot(root) {
				issues = append(issues, models.ValidationIssue{
					Code:     models.CodeExpressionSuspect,
					Severity: models.SeverityInfo,
					NodeName: nodeName,
					Message: fmt.Sprintf("expression references %q, which the runtime may not expose",
						root),
					Suggestion: fmt.Sprintf("known context objects: %s", strings.Join(knownExpressionRoots, ", ")),
				})
			}
		}
	}

	return issues
}

var rootReference = regexp.MustCompile(`\$[A-Za-z_][A-Za-z0-9_]*`)

func referencedRoots(expr string) []string {
	return rootReference.FindAllString(expr, -1)
}

func isKnownRoot(root string) bool {
	for _, known := range knownExpressionRoots {
		if root == known {
			return true
		}
	}

	return false
}

// walkStrings visits every string leaf in a parameter tree.
func walkStrings(value any, visit func(string)) {
	switch typed := value.(type) {
	case string:
		visit(typed)
	case map[string]any:
		for _, child := range typed {
			walkStrings(child, visit)
		}
	case []any:
		for _, child := range typed {
			walkStrings(child, visit)
		}
	}
}
