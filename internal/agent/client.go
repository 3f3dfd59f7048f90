// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jeranaias/firstverify-chat/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the agent client.
type ClientError struct {
	Type       ErrorType
	StatusCode int
	Message    string
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches any ClientError of the same type, so callers can test
// against the sentinels below.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	return ok && t.Type == e.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeRequest
	ErrTypeConnection
	ErrTypeStatus
	ErrTypeDecode
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeRequest:
		return "request"
	case ErrTypeConnection:
		return "connection"
	case ErrTypeStatus:
		return "status"
	case ErrTypeDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinel errors for easy checking.
var (
	ErrNotReachable = &ClientError{Type: ErrTypeConnection, Message: "agent server is not reachable"}
	ErrBadStatus    = &ClientError{Type: ErrTypeStatus, Message: "agent server returned an error status"}
	ErrBadResponse  = &ClientError{Type: ErrTypeDecode, Message: "agent server returned an unreadable body"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the agent client.
type ClientConfig struct {
	// BaseURL is the agent server root (default: http://localhost:8000)
	BaseURL string

	// ChatPath is the chat endpoint below BaseURL (default: /agent/chat)
	ChatPath string

	// HTTPClient overrides the transport. Its Timeout is left as given;
	// the default client has none.
	HTTPClient *http.Client

	// Logger receives request diagnostics (default: slog.Default()).
	Logger *slog.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:  "http://localhost:8000",
		ChatPath: "/agent/chat",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends conversations to the agent endpoint.
//
// Requests are never retried and carry no client-side deadline; a request
// ends only when the server answers, the connection fails, or the caller's
// context is cancelled.
//
// The Client is thread-safe for concurrent use.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
}

// NewClient creates a client for the given base URL with default settings.
func NewClient(baseURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates a new agent client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8000"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.ChatPath == "" {
		cfg.ChatPath = "/agent/chat"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// Endpoint returns the full chat URL.
func (c *Client) Endpoint() string {
	return c.config.BaseURL + c.config.ChatPath
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

func (c *Client) logger() *slog.Logger {
	if c.config.Logger != nil {
		return c.config.Logger
	}
	return slog.Default()
}

// =============================================================================
// CHAT
// =============================================================================

// Chat posts the conversation and returns the raw reply text.
// Any non-2xx status is an error of type ErrTypeStatus.
func (c *Client) Chat(ctx context.Context, messages []model.WireMessage) (string, error) {
	if messages == nil {
		messages = []model.WireMessage{}
	}

	body, err := json.Marshal(ChatRequest{Messages: messages})
	if err != nil {
		return "", &ClientError{Type: ErrTypeRequest, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeRequest, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	log := c.logger().With("endpoint", c.Endpoint(), "messages", len(messages))
	log.Debug("sending chat request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("chat request failed", "error", err)
		return "", &ClientError{Type: ErrTypeConnection, Message: ErrNotReachable.Message, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Error("chat request rejected",
			"status", resp.StatusCode,
			"body", strings.TrimSpace(string(snippet)),
		)
		return "", &ClientError{
			Type:       ErrTypeStatus,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("chat request failed: %s", resp.Status),
		}
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Error("chat response unreadable", "error", err)
		return "", &ClientError{Type: ErrTypeDecode, Message: "failed to decode response", Cause: err}
	}

	log.Info("chat reply received",
		"status", resp.StatusCode,
		"bytes", len(result.Response),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return result.Response, nil
}
