package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/f9n/alertmanager-silences-slack-reporter/internal/pkg/errors"
)

// DefaultAPIURL is the Slack Web API chat.postMessage endpoint
const DefaultAPIURL = "https://slack.com/api/chat.postMessage"

// Client posts messages through the Slack Web API using a bot token
type Client struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// Config holds the client configuration
type Config struct {
	Token      string        // Bot token used as a Bearer credential
	APIURL     string        // Override of the chat.postMessage URL, used in tests
	Timeout    time.Duration // HTTP client timeout (default: 30s)
	HTTPClient *http.Client  // Optional custom HTTP client
}

// NewClient creates a new Slack client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	return &Client{
		token:      cfg.Token,
		apiURL:     cfg.APIURL,
		httpClient: httpClient,
	}
}

// PostMessage sends text to the given channel. Slack signals
// application-level rejection with an ok:false body on HTTP 200, so the
// response envelope is checked in addition to the status code. The
// message timestamp is not consumed by this tool.
func (c *Client) PostMessage(ctx context.Context, channel, text string) error {
	payload, err := json.Marshal(Message{Channel: channel, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return errors.Connectivity("slack", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Connectivity("slack", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Connectivity("slack", err)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.Upstream("slack", resp.StatusCode, string(body))
	}

	var slackResp Response
	if err := json.Unmarshal(body, &slackResp); err != nil {
		return errors.Deserialization("slack", err)
	}

	if !slackResp.OK {
		return errors.PublishRejected(slackResp.Error)
	}

	return nil
}
