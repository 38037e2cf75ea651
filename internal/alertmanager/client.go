package alertmanager

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/f9n/alertmanager-silences-slack-reporter/internal/pkg/errors"
)

const silencesPath = "/api/v2/silences"

// Client is a minimal Alertmanager v2 API client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds the client configuration
type Config struct {
	BaseURL    string        // Alertmanager base URL, e.g. "http://alertmanager:9093"
	Timeout    time.Duration // HTTP client timeout (default: 30s)
	HTTPClient *http.Client  // Optional custom HTTP client
}

// NewClient creates a new Alertmanager client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
	}
}

// BaseURL returns the configured Alertmanager base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListSilences fetches the complete current silence set. A single GET,
// no authentication, no pagination, no retries. An empty array is a
// valid result distinct from failure.
func (c *Client) ListSilences(ctx context.Context) ([]Silence, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+silencesPath, nil)
	if err != nil {
		return nil, errors.Connectivity("alertmanager", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Connectivity("alertmanager", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Connectivity("alertmanager", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Upstream("alertmanager", resp.StatusCode, string(body))
	}

	var silences []Silence
	if err := json.Unmarshal(body, &silences); err != nil {
		return nil, errors.Deserialization("alertmanager", err)
	}

	return silences, nil
}
