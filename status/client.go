package status

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poiesic/vectorit/core"
)

const defaultTimeout = 10 * time.Second

// Client reports job state over the owning system's internal HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client during construction.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a reporter that talks to the internal API at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("status: base URL is required")
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "status")
	return c, nil
}

type statusUpdate struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type indexInfoUpdate struct {
	CollectionName string   `json:"collection_name"`
	PointIDs       []string `json:"point_ids"`
}

// UpdateStatus reports a lifecycle transition for the file.
func (c *Client) UpdateStatus(ctx context.Context, fileID string, jobStatus core.JobStatus, errorMessage string) error {
	payload := statusUpdate{Status: string(jobStatus), ErrorMessage: errorMessage}
	endpoint := fmt.Sprintf("%s/internal/files/%s/status", c.baseURL, url.PathEscape(fileID))

	if err := c.patch(ctx, endpoint, payload); err != nil {
		return fmt.Errorf("update status of %s to %s: %w", fileID, jobStatus, err)
	}

	c.logger.Debug("reported status", "file_id", fileID, "status", jobStatus)
	return nil
}

// UpdateIndexInfo reports the collection and point ids written for the file.
func (c *Client) UpdateIndexInfo(ctx context.Context, fileID, collection string, pointIDs []string) error {
	payload := indexInfoUpdate{CollectionName: collection, PointIDs: pointIDs}
	endpoint := fmt.Sprintf("%s/internal/files/%s/index-info", c.baseURL, url.PathEscape(fileID))

	if err := c.patch(ctx, endpoint, payload); err != nil {
		return fmt.Errorf("update index info of %s: %w", fileID, err)
	}

	c.logger.Debug("reported index info", "file_id", fileID, "collection", collection, "points", len(pointIDs))
	return nil
}

// patch sends the payload and maps the response: 2xx success, 404 a distinct
// not-found error, anything else an error carrying the body snippet.
func (c *Client) patch(ctx context.Context, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrFileNotFound
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected response %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}
}
