// Package policy decides whether a resolved node type is permitted under the
// active policy, and proposes first-party alternatives for denied types.
package policy

import "strings"

// Mode selects how the gateway treats non-first-party types. It is decided
// once per validation run, never per node.
type Mode string

const (
	// ModeStrict permits only types in the first-party namespace.
	ModeStrict Mode = "strict"
	// ModePermissive permits every type that resolves in the catalog.
	ModePermissive Mode = "permissive"
)

// Prefixes making up the first-party namespace.
var firstPartyPrefixes = []string{
	"fluxon-nodes-base.",
	"fluxon-nodes-ai.",
}

// defaultAlternatives maps a denied type's package scope to first-party
// equivalents, best first. Keys are matched by prefix against the denied
// canonical type; absence of a mapping yields an empty list, not an error.
var defaultAlternatives = map[string][]string{
	// Generic browser automation: almost always an API call in disguise.
	"community-nodes.browser": {
		"fluxon-nodes-base.httpRequest",
	},
	// Community HTTP/webhook wrappers.
	"community-nodes.http": {
		"fluxon-nodes-base.httpRequest",
		"fluxon-nodes-base.webhook",
	},
	// Ad hoc data-munging packages.
	"community-nodes.transform": {
		"fluxon-nodes-base.set",
		"fluxon-nodes-base.code",
	},
	// Routing/branching helpers.
	"community-nodes.router": {
		"fluxon-nodes-base.if",
		"fluxon-nodes-base.switch",
	},
}

// Gateway applies the allow/deny policy for one validation run.
type Gateway struct {
	mode         Mode
	alternatives map[string][]string
}

// New creates a gateway in the given mode with the curated alternatives map.
func New(mode Mode) *Gateway {
	return &Gateway{mode: mode, alternatives: defaultAlternatives}
}

// NewWithAlternatives creates a gateway with a custom alternatives map.
func NewWithAlternatives(mode Mode, alternatives map[string][]string) *Gateway {
	return &Gateway{mode: mode, alternatives: alternatives}
}

// Mode returns the active policy mode.
func (g *Gateway) Mode() Mode {
	return g.mode
}

// IsAllowed reports whether the canonical type is permitted under the policy.
func (g *Gateway) IsAllowed(canonicalType string) bool {
	if g.mode == ModePermissive {
		return true
	}

	return IsFirstParty(canonicalType)
}

// AlternativesFor returns curated first-party replacements for a denied type,
// best match first. An unmapped type yields an empty list.
func (g *Gateway) AlternativesFor(canonicalType string) []string {
	// Longest key wins so a narrow mapping is never shadowed by a broad one.
	var (
		best    []string
		bestLen int
	)

	for prefix, alternatives := range g.alternatives {
		if strings.HasPrefix(canonicalType, prefix) && len(prefix) > bestLen {
			best = alternatives
			bestLen = len(prefix)
		}
	}

	return best
}

// IsFirstParty reports whether the canonical type belongs to the first-party
// namespace.
func IsFirstParty(canonicalType string) bool {
	for _, prefix := range firstPartyPrefixes {
		if strings.HasPrefix(canonicalType, prefix) {
			return true
		}
	}

	return false
}
