// Package models defines the core domain models for workflow document validation.
package models

// Port kinds used in the connection map. "main" carries regular data flow;
// the ai_* kinds attach tools, models and memory to AI nodes and are allowed
// to form cycles by the target runtime.
const (
	PortKindMain     = "main"
	PortKindAITool   = "ai_tool"
	PortKindAIModel  = "ai_languageModel"
	PortKindAIMemory = "ai_memory"
)

// ConnectionTarget references the receiving end of one connection branch.
type ConnectionTarget struct {
	Node  string `json:"node"  validate:"required"`
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// Connections maps a source node name to its output ports, each port holding
// ordered parallel branch groups of targets. One source may fan out across
// branch groups and many sources may target the same node.
type Connections map[string]map[string][][]ConnectionTarget

// NodeInstance is a single node occurrence inside a workflow document. Type
// holds the raw declared spelling before resolution against the catalog.
type NodeInstance struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"        validate:"required,min=1"`
	Type        string         `json:"type"        validate:"required"`
	TypeVersion float64        `json:"typeVersion,omitempty"`
	Position    [2]float64     `json:"position"`
	Parameters  map[string]any `json:"parameters"`
	Credentials map[string]any `json:"credentials,omitempty"`
}

// WorkflowDocument is a declarative workflow: a directed graph of typed nodes
// joined by typed connections. Node names are unique within a document.
type WorkflowDocument struct {
	Name        string         `json:"name"        validate:"required,min=1"`
	Nodes       []NodeInstance `json:"nodes"       validate:"required,min=1,dive"`
	Connections Connections    `json:"connections"`
}

// NodeByName returns the node with the given name, or nil.
func (d *WorkflowDocument) NodeByName(name string) *NodeInstance {
	for i := range d.Nodes {
		if d.Nodes[i].Name == name {
			return &d.Nodes[i]
		}
	}

	return nil
}

// ConnectionCount returns the total number of connection branches in the
// document, across all ports and branch groups.
func (d *WorkflowDocument) ConnectionCount() int {
	count := 0

	for _, ports := range d.Connections {
		for _, groups := range ports {
			for _, group := range groups {
				count += len(group)
			}
		}
	}

	return count
}
