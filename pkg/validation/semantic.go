package validation

import (
	"fmt"
	"regexp"

	"github.com/fluxon/flowlint/pkg/models"
	"github.com/fluxon/flowlint/pkg/resolver"
)

// ScoringConfig holds the scorer's deductions and thresholds. The values are
// heuristics without a derivation; they live here as named, overridable
// knobs so the scoring policy can be tuned without touching detection.
type ScoringConfig struct {
	MaxScriptNodes             int
	DeductionScriptOverBudget  int // per script node beyond MaxScriptNodes
	DeductionHTTPInScript      int
	DeductionReshapeInScript   int
	DeductionBranchingInScript int
}

// DefaultScoringConfig returns the stock scoring policy.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		MaxScriptNodes:             2,
		DeductionScriptOverBudget:  5,
		DeductionHTTPInScript:      15,
		DeductionReshapeInScript:   10,
		DeductionBranchingInScript: 10,
	}
}

// Score bands reported alongside the raw score so callers pick their own
// accept threshold instead of the engine baking in a cutoff.
const (
	BandExcellent = "excellent"
	BandGood      = "good"
	BandFair      = "fair"
	BandPoor      = "poor"
)

// ScoreBand maps a raw score onto its band.
func ScoreBand(score int) string {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 70:
		return BandGood
	case score >= 50:
		return BandFair
	default:
		return BandPoor
	}
}

// Source-text patterns characteristic of work a specialized node does better.
var (
	httpPattern    = regexp.MustCompile(`\bfetch\s*\(|\bhttp\.request\b|\baxios\b|XMLHttpRequest|\brequire\(['"]https?['"]\)`)
	reshapePattern = regexp.MustCompile(`\.map\s*\(|\.filter\s*\(|\.reduce\s*\(|Object\.assign|Object\.entries|JSON\.parse\s*\(`)
	branchPattern  = regexp.MustCompile(`\bif\s*\(|\bswitch\s*\(|\?\s*[^:]+\s*:`)
)

// ScoreSemantics inspects generic scripting nodes for anti-patterns and
// returns a 0-100 quality score with advisory findings. It never claims
// certainty: every finding is a suggestion pointing at the specialized node
// family that would express the same behavior more reliably.
func ScoreSemantics(
	doc *models.WorkflowDocument,
	resolutions map[string]*resolver.Resolution,
	config ScoringConfig,
) (int, []models.ValidationIssue) {
	var issues []models.ValidationIssue

	score := 100

	scriptNodes := make([]*models.NodeInstance, 0)

	for i := range doc.Nodes {
		node := &doc.Nodes[i]

		resolution := resolutions[node.Name]
		if resolution == nil || !resolution.Confident {
			continue
		}

		if resolution.Entry.Category == models.CategoryScripting {
			scriptNodes = append(scriptNodes, node)
		}
	}

	if over := len(scriptNodes) - config.MaxScriptNodes; over > 0 {
		deduction := over * config.DeductionScriptOverBudget
		score -= deduction

		issues = append(issues, models.ValidationIssue{
			Code:     models.CodeAntiPatternDetected,
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("%d scripting nodes in one workflow (%d over budget, -%d points)",
				len(scriptNodes), over, deduction),
			Suggestion: "consolidate scripts or replace them with first-party nodes; " +
				"heavy scripting hides the data flow from the editor",
		})
	}

	for _, node := range scriptNodes {
		source := scriptSource(node)
		if source == "" {
			continue
		}

		if httpPattern.MatchString(source) {
			score -= config.DeductionHTTPInScript

			issues = append(issues, models.ValidationIssue{
				Code:       models.CodeAntiPatternDetected,
				Severity:   models.SeverityWarning,
				NodeName:   node.Name,
				Message:    fmt.Sprintf("script in %q appears to make HTTP calls", node.Name),
				Suggestion: "an HTTP Request node handles auth, retries and pagination for you",
				Alternatives: []string{
					"fluxon-nodes-base.httpRequest",
				},
			})
		}

		if reshapePattern.MatchString(source) {
			score -= config.DeductionReshapeInScript

			issues = append(issues, models.ValidationIssue{
				Code:       models.CodeAntiPatternDetected,
				Severity:   models.SeverityInfo,
				NodeName:   node.Name,
				Message:    fmt.Sprintf("script in %q appears to reshape data", node.Name),
				Suggestion: "an Edit Fields node keeps the mapping visible in the editor",
				Alternatives: []string{
					"fluxon-nodes-base.set",
				},
			})
		}

		if branchPattern.MatchString(source) {
			score -= config.DeductionBranchingInScript

			issues = append(issues, models.ValidationIssue{
				Code:       models.CodeAntiPatternDetected,
				Severity:   models.SeverityInfo,
				NodeName:   node.Name,
				Message:    fmt.Sprintf("script in %q appears to branch on conditions", node.Name),
				Suggestion: "If/Switch nodes make the branches individually testable",
				Alternatives: []string{
					"fluxon-nodes-base.if",
					"fluxon-nodes-base.switch",
				},
			})
		}
	}

	if score < 0 {
		score = 0
	}

	return score, issues
}

// scriptSource pulls the source text out of a scripting node's parameters.
func scriptSource(node *models.NodeInstance) string {
	for _, key := range []string{"jsCode", "code", "source"} {
		if value, ok := node.Parameters[key].(string); ok {
			return value
		}
	}

	return ""
}
