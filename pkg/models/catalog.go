// Package models defines catalog metadata for known node types.
package models

// CatalogEntry is the canonical metadata record for one node type. Entries
// are immutable once loaded into the in-process cache and refreshed wholesale
// on TTL expiry.
type CatalogEntry struct {
	CanonicalType       string         `json:"canonical_type"        validate:"required"`
	DisplayName         string         `json:"display_name"`
	Description         string         `json:"description"`
	Category            string         `json:"category"`
	PackageName         string         `json:"package_name"`
	IsAITool            bool           `json:"is_ai_tool"`
	IsTrigger           bool           `json:"is_trigger"`
	IsWebhook           bool           `json:"is_webhook"`
	IsVersioned         bool           `json:"is_versioned"`
	RequiredParameters  []string       `json:"required_parameters"` // dotted paths, ordered
	ParameterSchema     map[string]any `json:"parameter_schema,omitempty"`
	CurrentVersion      float64        `json:"current_version"`
	MinSupportedVersion float64        `json:"min_supported_version"`
	MaxSupportedVersion float64        `json:"max_supported_version"`
}

// Node categories recorded on catalog entries.
const (
	CategoryTrigger   = "trigger"
	CategoryAction    = "action"
	CategoryAI        = "ai"
	CategoryScripting = "scripting"
)
