package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/models"
	"github.com/fluxon/flowlint/pkg/otelhelper"
	"github.com/fluxon/flowlint/pkg/policy"
	"github.com/fluxon/flowlint/pkg/resolver"
)

// Profile selects validation depth.
type Profile string

const (
	// ProfileRuntime runs the structural, parameter and policy checks only.
	ProfileRuntime Profile = "runtime"
	// ProfileFull adds semantic scoring on top of the runtime profile.
	ProfileFull Profile = "full"
)

// Options configure one validation run.
type Options struct {
	Profile             Profile
	ValidateConnections bool
	ValidateExpressions bool
}

// DefaultOptions returns the runtime profile with connection checks on and
// the advisory expression scan off.
func DefaultOptions() Options {
	return Options{
		Profile:             ProfileRuntime,
		ValidateConnections: true,
		ValidateExpressions: false,
	}
}

// Engine composes the resolver, policy gateway and validators into one pass
// over a document, and memoizes each verdict in the validation cache.
type Engine struct {
	resolver  *resolver.Resolver
	gateway   *policy.Gateway
	cache     *Cache
	scoring   ScoringConfig
	validator *validator.Validate
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewEngine builds an engine. The policy gateway is passed in, not read from
// process state, so strict and permissive runs are testable side by side.
func NewEngine(res *resolver.Resolver, gateway *policy.Gateway, logger *slog.Logger) *Engine {
	return &Engine{
		resolver:  res,
		gateway:   gateway,
		cache:     NewCache(DefaultCacheTTL, DefaultCacheEntries),
		scoring:   DefaultScoringConfig(),
		validator: validator.New(),
		tracer:    noop.NewTracerProvider().Tracer("flowlint"),
		logger:    logger.With("module", "validation"),
	}
}

// WithTracer replaces the no-op tracer.
func (e *Engine) WithTracer(tracer trace.Tracer) *Engine {
	e.tracer = tracer

	return e
}

// WithScoringConfig replaces the semantic scoring policy.
func (e *Engine) WithScoringConfig(config ScoringConfig) *Engine {
	e.scoring = config

	return e
}

// Cache exposes the validation cache for the write gateway.
func (e *Engine) Cache() *Cache {
	return e.cache
}

// Run validates a document and records the verdict in the cache. The only
// error return is infrastructure failure (catalog store unreachable); every
// document defect lands in the report instead.
func (e *Engine) Run(ctx context.Context, doc *models.WorkflowDocument, opts Options) (*models.ValidationReport, error) {
	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "validation.run",
		attribute.String(otelhelper.WorkflowNameKey, doc.Name),
		attribute.Int(otelhelper.NodeCountKey, len(doc.Nodes)),
		attribute.String(otelhelper.ProfileKey, string(opts.Profile)),
	)
	defer span.End()

	report := &models.ValidationReport{
		Errors:      []models.ValidationIssue{},
		Warnings:    []models.ValidationIssue{},
		Suggestions: []models.ValidationIssue{},
	}

	e.checkDocumentShape(doc, report)

	// Resolve every node's type once; every later check reuses this.
	resolutions, err := e.resolveAll(ctx, doc, report)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	e.applyPolicy(doc, resolutions, report)

	for i := range doc.Nodes {
		node := &doc.Nodes[i]

		resolution := resolutions[node.Name]
		if resolution == nil || !resolution.Confident {
			continue // UnknownNodeType already reported, skip parameter checks
		}

		report.AddAll(ValidateParameters(node, resolution.Entry))
	}

	structureIssues, stats := ValidateStructure(doc, resolutions)
	if !opts.ValidateConnections {
		structureIssues = dropConnectionIssues(structureIssues)
	}

	report.AddAll(structureIssues)
	report.Statistics = stats

	if opts.Profile == ProfileFull {
		score, semanticIssues := ScoreSemantics(doc, resolutions, e.scoring)
		report.SemanticScore = &score
		report.ScoreBand = ScoreBand(score)
		report.AddAll(semanticIssues)
	}

	if opts.ValidateExpressions {
		report.AddAll(ScanExpressions(doc))
	}

	report.Finalize()
	e.cache.Record(doc, report)

	span.SetAttributes(
		attribute.Bool(otelhelper.ValidKey, report.Valid),
		attribute.String(otelhelper.ContentHashKey, ContentHash(doc)),
	)
	e.logger.InfoContext(ctx, "validation run completed",
		"workflow", doc.Name,
		"profile", opts.Profile,
		"valid", report.Valid,
		"errors", len(report.Errors),
		"warnings", len(report.Warnings))

	return report, nil
}

// checkDocumentShape runs struct-tag validation over the inbound document.
// Shape defects (missing name, empty node list) are reported as issues so
// the caller still gets one complete report.
func (e *Engine) checkDocumentShape(doc *models.WorkflowDocument, report *models.ValidationReport) {
	err := e.validator.Struct(doc)
	if err == nil {
		return
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		report.Add(models.ValidationIssue{
			Code:     models.CodeInvalidDocument,
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("document failed shape validation: %v", err),
		})

		return
	}

	for _, fieldError := range fieldErrors {
		report.Add(models.ValidationIssue{
			Code:     models.CodeInvalidDocument,
			Severity: models.SeverityError,
			Message: fmt.Sprintf("field %s failed %q validation",
				fieldError.Namespace(), fieldError.Tag()),
		})
	}
}

// resolveAll resolves each node type, reporting UnknownNodeType (with any
// fuzzy candidate as a suggestion) for misses. A store failure aborts the
// run: downgrading every node to UnknownNodeType would corrupt the report.
func (e *Engine) resolveAll(
	ctx context.Context,
	doc *models.WorkflowDocument,
	report *models.ValidationReport,
) (map[string]*resolver.Resolution, error) {
	resolutions := make(map[string]*resolver.Resolution, len(doc.Nodes))

	for i := range doc.Nodes {
		node := &doc.Nodes[i]

		resolution, err := e.resolver.Resolve(ctx, node.Type)
		if err != nil {
			if catalog.IsNotFound(err) {
				report.Add(models.ValidationIssue{
					Code:     models.CodeUnknownNodeType,
					Severity: models.SeverityError,
					NodeName: node.Name,
					Message:  fmt.Sprintf("node type %q is not in the catalog", node.Type),
				})

				continue
			}

			return nil, fmt.Errorf("resolving node %q: %w", node.Name, err)
		}

		resolutions[node.Name] = resolution

		if !resolution.Confident {
			report.Add(models.ValidationIssue{
				Code:     models.CodeUnknownNodeType,
				Severity: models.SeverityError,
				NodeName: node.Name,
				Message: fmt.Sprintf("node type %q is not in the catalog; %q looks similar",
					node.Type, resolution.CanonicalType),
				Suggestion:   fmt.Sprintf("did you mean %q?", resolution.CanonicalType),
				Alternatives: []string{resolution.CanonicalType},
			})
		}
	}

	return resolutions, nil
}

// applyPolicy denies disallowed types, always attaching the curated
// alternatives list (possibly empty).
func (e *Engine) applyPolicy(
	doc *models.WorkflowDocument,
	resolutions map[string]*resolver.Resolution,
	report *models.ValidationReport,
) {
	for i := range doc.Nodes {
		node := &doc.Nodes[i]

		resolution := resolutions[node.Name]
		if resolution == nil || !resolution.Confident {
			continue
		}

		if e.gateway.IsAllowed(resolution.CanonicalType) {
			continue
		}

		alternatives := e.gateway.AlternativesFor(resolution.CanonicalType)
		if alternatives == nil {
			alternatives = []string{}
		}

		report.Add(models.ValidationIssue{
			Code:     models.CodePolicyViolation,
			Severity: models.SeverityError,
			NodeName: node.Name,
			Message: fmt.Sprintf("node type %q is not permitted under the %s policy",
				resolution.CanonicalType, e.gateway.Mode()),
			Suggestion:   policySuggestion(alternatives),
			Alternatives: alternatives,
		})
	}
}

func policySuggestion(alternatives []string) string {
	if len(alternatives) == 0 {
		return "no first-party equivalent is curated for this type"
	}

	return fmt.Sprintf("use %s instead", alternatives[0])
}

func dropConnectionIssues(issues []models.ValidationIssue) []models.ValidationIssue {
	kept := issues[:0]

	for _, issue := range issues {
		if issue.Code == models.CodeInvalidConnectionTarget || issue.Code == models.CodeOrphanedNode {
			continue
		}

		kept = append(kept, issue)
	}

	return kept
}
