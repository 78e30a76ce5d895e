// Package runtime provides a thin HTTP client for the Fluxon automation
// runtime's workflow API. The engine itself never touches the network; only
// the write gateway persists documents through this client.
package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fluxon/flowlint/pkg/models"
)

// ErrWorkflowNotFound is returned when the runtime has no workflow for an id.
var ErrWorkflowNotFound = errors.New("workflow not found in runtime")

const defaultTimeout = 30 * time.Second

// Workflow is a persisted document as the runtime returns it.
type Workflow struct {
	ID       string                  `json:"id"`
	Document models.WorkflowDocument `json:"document"`
}

// Client talks to a Fluxon runtime instance.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the runtime at baseURL. The API key may be
// empty for unauthenticated deployments.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// CreateWorkflow persists a new workflow and returns it with the runtime id.
func (c *Client) CreateWorkflow(ctx context.Context, id string, doc *models.WorkflowDocument) (*Workflow, error) {
	workflow := Workflow{ID: id, Document: *doc}

	var created Workflow

	err := c.do(ctx, http.MethodPost, "/api/v1/workflows", workflow, &created)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateWorkflow replaces the document of an existing workflow.
func (c *Client) UpdateWorkflow(ctx context.Context, id string, doc *models.WorkflowDocument) (*Workflow, error) {
	workflow := Workflow{ID: id, Document: *doc}

	var updated Workflow

	err := c.do(ctx, http.MethodPut, "/api/v1/workflows/"+id, workflow, &updated)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// GetWorkflow fetches a workflow by id.
func (c *Client) GetWorkflow(ctx context.Context, id string) (*Workflow, error) {
	var workflow Workflow

	err := c.do(ctx, http.MethodGet, "/api/v1/workflows/"+id, nil, &workflow)
	if err != nil {
		return nil, err
	}

	return &workflow, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("runtime request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrWorkflowNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return fmt.Errorf("runtime returned %d: %s", resp.StatusCode, string(payload))
	}

	if out != nil {
		err = json.NewDecoder(resp.Body).Decode(out)
		if err != nil {
			return fmt.Errorf("failed to decode runtime response: %w", err)
		}
	}

	return nil
}
