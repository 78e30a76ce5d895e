// Package resolver maps the surface spellings a workflow document may use
// for a node type onto the catalog's canonical identifier.
//
// Real documents mix several naming conventions for the same logical node:
// the fully scoped package name, a legacy flat prefix, a bare short name and
// a scoped-but-renamed package. Guessing silently would corrupt validation
// results, so resolution is layered: exact lookup, then an ordered rewrite
// table, then a fuzzy search whose best hit is only ever a candidate.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/models"
)

// RewriteRule rewrites one known prefix convention onto the canonical one.
type RewriteRule struct {
	MatchPrefix     string
	CanonicalPrefix string
}

// DefaultRules returns the rewrite table, most specific prefix first so a
// generic rule never shadows a specific one. The empty MatchPrefix rule maps
// bare short names into the base package and must stay last.
func DefaultRules() []RewriteRule {
	return []RewriteRule{
		{MatchPrefix: "@fluxon/nodes-ai.", CanonicalPrefix: "fluxon-nodes-ai."},
		{MatchPrefix: "@fluxon/nodes-base.", CanonicalPrefix: "fluxon-nodes-base."},
		{MatchPrefix: "nodes-ai.", CanonicalPrefix: "fluxon-nodes-ai."},
		{MatchPrefix: "nodes-base.", CanonicalPrefix: "fluxon-nodes-base."},
		{MatchPrefix: "base.", CanonicalPrefix: "fluxon-nodes-base."},
		{MatchPrefix: "", CanonicalPrefix: "fluxon-nodes-base."},
	}
}

// Resolution is the outcome of resolving one declared type. When Confident is
// false, CanonicalType is a fuzzy candidate that callers must surface only as
// a suggestion, never substitute silently.
type Resolution struct {
	CanonicalType string
	Entry         *models.CatalogEntry
	Confident     bool
}

// Resolver resolves declared type strings against the catalog.
type Resolver struct {
	catalog *catalog.Catalog
	rules   []RewriteRule
	logger  *slog.Logger
}

// New creates a resolver with the default rewrite table.
func New(cat *catalog.Catalog, logger *slog.Logger) *Resolver {
	return NewWithRules(cat, DefaultRules(), logger)
}

// NewWithRules creates a resolver with a custom rewrite table, evaluated in
// the given order.
func NewWithRules(cat *catalog.Catalog, rules []RewriteRule, logger *slog.Logger) *Resolver {
	return &Resolver{
		catalog: cat,
		rules:   rules,
		logger:  logger.With("module", "resolver"),
	}
}

// Resolve maps a declared type to its canonical catalog entry. Returns
// catalog.ErrNotFound when nothing resolves, even fuzzily; infrastructure
// failures from the catalog abort resolution unchanged.
func (r *Resolver) Resolve(ctx context.Context, declaredType string) (*Resolution, error) {
	// Exact lookup first: resolving an already-canonical type is a no-op.
	entry, err := r.catalog.Lookup(ctx, declaredType)
	if err == nil {
		return &Resolution{CanonicalType: entry.CanonicalType, Entry: entry, Confident: true}, nil
	}

	if !catalog.IsNotFound(err) {
		return nil, err
	}

	for _, rule := range r.rules {
		rewritten, ok := rule.apply(declaredType)
		if !ok {
			continue
		}

		entry, err := r.catalog.Lookup(ctx, rewritten)
		if err == nil {
			return &Resolution{CanonicalType: entry.CanonicalType, Entry: entry, Confident: true}, nil
		}

		if !catalog.IsNotFound(err) {
			return nil, err
		}
	}

	return r.fuzzyFallback(ctx, declaredType)
}

// fuzzyFallback searches the declared type's trailing segment and returns the
// best hit as an unconfirmed candidate.
func (r *Resolver) fuzzyFallback(ctx context.Context, declaredType string) (*Resolution, error) {
	segment := trailingSegment(declaredType)

	results, err := r.catalog.Search(ctx, segment, 5)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("resolving %q: %w", declaredType, catalog.ErrNotFound)
	}

	best := results[0]
	r.logger.DebugContext(ctx, "fuzzy type resolution",
		"declared", declaredType, "candidate", best.CanonicalType)

	return &Resolution{CanonicalType: best.CanonicalType, Entry: best, Confident: false}, nil
}

func (rule RewriteRule) apply(declaredType string) (string, bool) {
	if rule.MatchPrefix == "" {
		// Short-name rule: only applies when no scoping separator is present.
		if strings.ContainsAny(declaredType, "./@") {
			return "", false
		}

		return rule.CanonicalPrefix + declaredType, true
	}

	if !strings.HasPrefix(declaredType, rule.MatchPrefix) {
		return "", false
	}

	return rule.CanonicalPrefix + strings.TrimPrefix(declaredType, rule.MatchPrefix), true
}

func trailingSegment(declaredType string) string {
	if idx := strings.LastIndex(declaredType, "."); idx >= 0 {
		return declaredType[idx+1:]
	}

	return declaredType
}
