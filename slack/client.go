package slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client posts digest messages to an incoming webhook. A non-200 response or
// transport fault is a delivery failure; the caller logs it and the run
// completes normally.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a webhook client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithHTTP creates a webhook client around an existing HTTP client,
// for tests.
func NewClientWithHTTP(c *http.Client) *Client {
	return &Client{httpClient: c}
}

// Send posts the blocks to the webhook URL. Success is exactly HTTP 200.
// There are no retries.
func (c *Client) Send(webhookURL string, blocks []Block) error {
	payload, err := json.Marshal(Message{Blocks: blocks})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequest("POST", webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
