// Package chatbridge is the HTTP client the game uses to talk to the chat
// backend.
package chatbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jwebster45206/footagents/pkg/chat"
)

const DefaultTimeout = 30 * time.Second

var ErrResetFailed = errors.New("failed to reset memory")

// Speaker is the character a message is addressed to.
type Speaker interface {
	ID() string
	Name() string
}

// Client sends chat messages to the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// FallbackResponse is the reply shown when the backend cannot be reached.
func FallbackResponse(name string) string {
	if name == "" {
		name = "the player"
	}
	return fmt.Sprintf("I'm sorry, %s is unavailable at the moment. Please try again later.", name)
}

// SendMessage returns the speaker's reply to message. It never fails: any
// transport or protocol error yields FallbackResponse for the speaker.
func (c *Client) SendMessage(ctx context.Context, speaker Speaker, message string) string {
	var resp chat.ChatResponse
	err := c.post(ctx, "/chat", chat.ChatRequest{
		Message:     message,
		CharacterID: speaker.ID(),
	}, &resp)
	if err != nil {
		c.logger.Error("Error sending message to chat backend",
			"error", err,
			"character_id", speaker.ID())
		return FallbackResponse(speaker.Name())
	}
	return resp.Response
}

// ResetMemory clears every conversation the backend remembers. Errors are
// returned to the caller.
func (c *Client) ResetMemory(ctx context.Context) (*chat.ResetResponse, error) {
	var resp chat.ResetResponse
	if err := c.post(ctx, "/reset-memory", nil, &resp); err != nil {
		c.logger.Error("Error resetting memory", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrResetFailed, err)
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Making API request", "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("API response", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
