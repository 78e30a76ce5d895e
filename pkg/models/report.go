// Package models defines validation findings and the merged report shape.
package models

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue codes. The taxonomy is fixed: callers key remediation off these.
const (
	CodeUnknownNodeType         = "UnknownNodeType"
	CodePolicyViolation         = "PolicyViolation"
	CodeMissingRequiredField    = "MissingRequiredField"
	CodeInvalidConnectionTarget = "InvalidConnectionTarget"
	CodeMissingTrigger          = "MissingTrigger"
	CodeDuplicateNodeName       = "DuplicateNodeName"
	CodeMultipleTriggers        = "MultipleTriggers"
	CodeOrphanedNode            = "OrphanedNode"
	CodeAntiPatternDetected     = "AntiPatternDetected"
	CodeExpressionSuspect       = "ExpressionSuspect"
	CodeParameterSchemaMismatch = "ParameterSchemaMismatch"
	CodeInvalidDocument         = "InvalidDocument"
)

// ValidationIssue is a single finding against a document.
type ValidationIssue struct {
	Code         string   `json:"code"`
	Severity     Severity `json:"severity"`
	NodeName     string   `json:"nodeName,omitempty"`
	Message      string   `json:"message"`
	Suggestion   string   `json:"suggestion,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// Complexity is a coarse reporting aid derived from node and connection counts.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// Statistics summarizes the structural shape of a validated document.
type Statistics struct {
	TotalNodes         int        `json:"totalNodes"`
	TriggerNodes       int        `json:"triggerNodes"`
	ValidConnections   int        `json:"validConnections"`
	InvalidConnections int        `json:"invalidConnections"`
	OrphanedNodes      int        `json:"orphanedNodes"`
	Complexity         Complexity `json:"complexity"`
}

// ValidationReport is the merged outcome of one orchestrator run.
// Valid is true iff no error-severity issue was found; warnings and
// suggestions never affect validity.
type ValidationReport struct {
	Valid         bool              `json:"valid"`
	Errors        []ValidationIssue `json:"errors"`
	Warnings      []ValidationIssue `json:"warnings"`
	Suggestions   []ValidationIssue `json:"suggestions"`
	Statistics    Statistics        `json:"statistics"`
	SemanticScore *int              `json:"semanticScore,omitempty"`
	ScoreBand     string            `json:"scoreBand,omitempty"`
}

// Add routes an issue into the matching report bucket.
func (r *ValidationReport) Add(issue ValidationIssue) {
	switch issue.Severity {
	case SeverityError:
		r.Errors = append(r.Errors, issue)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, issue)
	case SeverityInfo:
		r.Suggestions = append(r.Suggestions, issue)
	}
}

// AddAll routes a batch of issues into the report.
func (r *ValidationReport) AddAll(issues []ValidationIssue) {
	for _, issue := range issues {
		r.Add(issue)
	}
}

// Finalize recomputes the validity flag from the collected errors.
func (r *ValidationReport) Finalize() {
	r.Valid = len(r.Errors) == 0
}
