package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "routeplan/internal/errors"
	"routeplan/domain/schema"
)

// Client talks to the external route-assignment service. The service consumes
// parsed Job/Salesman arrays and returns per-salesman assignments; this side
// only guarantees well-formed input, never feasibility.
type Client struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewClient creates an assignment-service client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Timeout:    timeout,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// AssignRequest is the request payload for the assignment service.
type AssignRequest struct {
	Jobs     []schema.Job      `json:"jobs"`
	Salesmen []schema.Salesman `json:"salesmen"`
}

// Assignment is the assignment service's response: jobs keyed by salesman ID,
// plus the jobs no salesman could take.
type Assignment struct {
	Jobs           map[string][]schema.Job `json:"jobs"`
	UnassignedJobs []schema.Job            `json:"unassigned_jobs"`
	Message        string                  `json:"message"`
}

// Assign posts the parsed batch to the assignment service.
func (c *Client) Assign(ctx context.Context, jobs []schema.Job, salesmen []schema.Salesman) (*Assignment, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("missing optimizer base URL")
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no jobs to assign")
	}
	if len(salesmen) == 0 {
		return nil, fmt.Errorf("no salesmen to assign jobs to")
	}

	raw, err := json.Marshal(AssignRequest{Jobs: jobs, Salesmen: salesmen})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.BaseURL + "/assign"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.ExternalServiceError("optimizer", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ExternalServiceError("optimizer",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var assignment Assignment
	if err := json.Unmarshal(body, &assignment); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &assignment, nil
}
