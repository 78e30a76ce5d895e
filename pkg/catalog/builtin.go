package catalog

import "github.com/fluxon/flowlint/pkg/models"

// Builtin returns the first-party node-type seed. Production deployments load
// the catalog from a persistent store populated by the ingestion pipeline;
// the seed covers the core type families so the engine and its tests can run
// against a fully queryable catalog out of the box.
func Builtin() []*models.CatalogEntry {
	return []*models.CatalogEntry{
		{
			CanonicalType:       "fluxon-nodes-base.webhook",
			DisplayName:         "Webhook",
			Description:         "Starts the workflow when an HTTP request hits the registered path",
			Category:            models.CategoryTrigger,
			PackageName:         "fluxon-nodes-base",
			IsTrigger:           true,
			IsWebhook:           true,
			IsVersioned:         true,
			RequiredParameters:  []string{"path"},
			CurrentVersion:      2,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 2,
		},
		{
			CanonicalType:       "fluxon-nodes-base.scheduleTrigger",
			DisplayName:         "Schedule Trigger",
			Description:         "Starts the workflow on a fixed schedule",
			Category:            models.CategoryTrigger,
			PackageName:         "fluxon-nodes-base",
			IsTrigger:           true,
			IsVersioned:         true,
			RequiredParameters:  []string{"rule.interval"},
			CurrentVersion:      1.2,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 1.2,
		},
		{
			CanonicalType:       "fluxon-nodes-base.manualTrigger",
			DisplayName:         "Manual Trigger",
			Description:         "Starts the workflow when triggered by hand",
			Category:            models.CategoryTrigger,
			PackageName:         "fluxon-nodes-base",
			IsTrigger:           true,
			CurrentVersion:      1,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 1,
		},
		{
			CanonicalType:      "fluxon-nodes-base.httpRequest",
			DisplayName:        "HTTP Request",
			Description:        "Performs HTTP requests with authentication, retries and pagination",
			Category:           models.CategoryAction,
			PackageName:        "fluxon-nodes-base",
			IsVersioned:        true,
			RequiredParameters: []string{"url", "options"},
			ParameterSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"url": map[string]any{"type": "string"},
					"method": map[string]any{
						"type": "string",
						"enum": []any{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
					},
					"options": map[string]any{"type": "object"},
				},
			},
			CurrentVersion:      4.2,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 4.2,
		},
		{
			CanonicalType:       "fluxon-nodes-base.set",
			DisplayName:         "Edit Fields",
			Description:         "Sets, renames and reshapes fields on items passing through",
			Category:            models.CategoryAction,
			PackageName:         "fluxon-nodes-base",
			IsVersioned:         true,
			RequiredParameters:  []string{"assignments"},
			CurrentVersion:      3.4,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 3.4,
		},
		{
			CanonicalType:       "fluxon-nodes-base.if",
			DisplayName:         "If",
			Description:         "Routes items down the true or false branch by condition",
			Category:            models.CategoryAction,
			PackageName:         "fluxon-nodes-base",
			IsVersioned:         true,
			RequiredParameters:  []string{"conditions"},
			CurrentVersion:      2.2,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 2.2,
		},
		{
			CanonicalType:       "fluxon-nodes-base.switch",
			DisplayName:         "Switch",
			Description:         "Routes items across multiple branches by rule",
			Category:            models.CategoryAction,
			PackageName:         "fluxon-nodes-base",
			IsVersioned:         true,
			RequiredParameters:  []string{"rules"},
			CurrentVersion:      3.2,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 3.2,
		},
		{
			CanonicalType:       "fluxon-nodes-base.merge",
			DisplayName:         "Merge",
			Description:         "Combines items from multiple input branches",
			Category:            models.CategoryAction,
			PackageName:         "fluxon-nodes-base",
			IsVersioned:         true,
			CurrentVersion:      3.1,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 3.1,
		},
		{
			CanonicalType:       "fluxon-nodes-base.code",
			DisplayName:         "Code",
			Description:         "Runs custom JavaScript over incoming items",
			Category:            models.CategoryScripting,
			PackageName:         "fluxon-nodes-base",
			IsVersioned:         true,
			RequiredParameters:  []string{"jsCode"},
			CurrentVersion:      2,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 2,
		},
		{
			CanonicalType:       "fluxon-nodes-ai.agent",
			DisplayName:         "AI Agent",
			Description:         "Orchestrates a language model with attached tools and memory",
			Category:            models.CategoryAI,
			PackageName:         "fluxon-nodes-ai",
			IsVersioned:         true,
			RequiredParameters:  []string{"promptType"},
			CurrentVersion:      1.7,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 1.7,
		},
		{
			CanonicalType:       "fluxon-nodes-ai.languageModel",
			DisplayName:         "Language Model",
			Description:         "Provides a chat model to AI nodes over the ai_languageModel port",
			Category:            models.CategoryAI,
			PackageName:         "fluxon-nodes-ai",
			RequiredParameters:  []string{"model"},
			CurrentVersion:      1,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 1,
		},
		{
			CanonicalType:       "fluxon-nodes-ai.memoryBuffer",
			DisplayName:         "Memory Buffer",
			Description:         "Keeps a rolling window of conversation context",
			Category:            models.CategoryAI,
			PackageName:         "fluxon-nodes-ai",
			CurrentVersion:      1.3,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 1.3,
		},
		{
			CanonicalType:       "fluxon-nodes-ai.toolCode",
			DisplayName:         "Code Tool",
			Description:         "Exposes custom code as a callable tool on the ai_tool port",
			Category:            models.CategoryAI,
			PackageName:         "fluxon-nodes-ai",
			IsAITool:            true,
			RequiredParameters:  []string{"jsCode"},
			CurrentVersion:      1.1,
			MinSupportedVersion: 1,
			MaxSupportedVersion: 1.1,
		},
	}
}

// NewBuiltinStore returns a memory store seeded with Builtin().
func NewBuiltinStore() *MemoryStore {
	return NewMemoryStore(Builtin()...)
}
