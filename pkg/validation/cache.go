package validation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/fluxon/flowlint/pkg/models"
	"github.com/fluxon/flowlint/pkg/ttlcache"
)

// Validation cache defaults: short TTL so "validated" never means "validated
// against a long-gone catalog".
const (
	DefaultCacheTTL     = 5 * time.Minute
	DefaultCacheEntries = 512
)

// Verdict is the cached answer the write gateway keys mutations off.
type Verdict struct {
	Validated bool
	Valid     bool
	Report    *models.ValidationReport
}

// Cache memoizes the orchestrator's last report per document content hash.
// The write gateway consults it to enforce validate-then-write without
// re-running the pipeline on every call.
type Cache struct {
	entries *ttlcache.Cache[string, *models.ValidationReport]
}

// NewCache creates a validation cache.
func NewCache(ttl time.Duration, maxEntries int) *Cache {
	return &Cache{
		entries: ttlcache.New[string, *models.ValidationReport](ttl, maxEntries),
	}
}

// Record stores or overwrites the report for the document's content hash.
func (c *Cache) Record(doc *models.WorkflowDocument, report *models.ValidationReport) {
	c.entries.Set(ContentHash(doc), report)
}

// Check looks up the verdict for a document by content hash.
func (c *Cache) Check(doc *models.WorkflowDocument) Verdict {
	report, ok := c.entries.Get(ContentHash(doc))
	if !ok {
		return Verdict{}
	}

	return Verdict{Validated: true, Valid: report.Valid, Report: report}
}

// hashNode is the per-node view included in the content hash. Credentials
// and any timestamps are excluded as transient; position is deliberately
// included, so layout-only edits force revalidation.
type hashNode struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	TypeVersion float64        `json:"typeVersion"`
	Position    [2]float64     `json:"position"`
	Parameters  map[string]any `json:"parameters"`
}

type hashView struct {
	Name        string             `json:"name"`
	Nodes       []hashNode         `json:"nodes"`
	Connections models.Connections `json:"connections"`
}

// ContentHash returns the hex digest of a canonicalized serialization of the
// document. encoding/json writes map keys in sorted order, so marshaling the
// hash view is itself the canonical form.
func ContentHash(doc *models.WorkflowDocument) string {
	view := hashView{
		Name:        doc.Name,
		Nodes:       make([]hashNode, 0, len(doc.Nodes)),
		Connections: doc.Connections,
	}

	for _, node := range doc.Nodes {
		view.Nodes = append(view.Nodes, hashNode{
			ID:          node.ID,
			Name:        node.Name,
			Type:        node.Type,
			TypeVersion: node.TypeVersion,
			Position:    node.Position,
			Parameters:  node.Parameters,
		})
	}

	serialized, err := json.Marshal(view)
	if err != nil {
		// Documents arrive from JSON, so a marshal failure cannot happen for
		// any value that got this far; hash the name alone as a last resort.
		serialized = []byte(doc.Name)
	}

	digest := sha256.Sum256(serialized)

	return hex.EncodeToString(digest[:])
}
