// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant provides the HTTP client for the hosted assistant
// service.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the assistant client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
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

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeBadStatus
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeConnection, Message: "assistant service is unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsTimeout reports whether err is a timeout error.
func IsTimeout(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeTimeout
}

// IsUnreachable reports whether err indicates the service could not be
// reached at all.
func IsUnreachable(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeConnection
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the assistant client.
type ClientConfig struct {
	// BaseURL is the service base URL; the chat endpoint is {BaseURL}/chat.
	BaseURL string

	// Timeout for the chat round trip (default: 60s, replies can be slow).
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
		Timeout: 60 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the assistant service.
// It is safe for concurrent use, though the UI issues at most one request
// at a time.
//
// Example:
//
//	client := assistant.NewClient()
//	reply, err := client.Chat(ctx, "hello", sessionID)
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new assistant client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new assistant client with custom
// configuration, filling in defaults for any zero values.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// Ping verifies that the service is reachable. Any HTTP response counts;
// only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	resp.Body.Close()
	return nil
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends one user query and returns the assistant's reply. A single
// best-effort attempt: no retries, no streaming. The returned Reply keeps
// the raw response body so callers can preserve the opaque payload.
func (c *Client) Chat(ctx context.Context, query, sessionID string) (*Reply, error) {
	body, err := json.Marshal(ChatRequest{Query: query, SessionID: sessionID})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "chat request failed", Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ClientError{
			Type:    ErrTypeBadStatus,
			Message: "unexpected status from assistant: " + resp.Status,
		}
	}

	var decoded ChatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &Reply{
		Message:   decoded.Data.Message,
		SessionID: decoded.Data.SessionID,
		Raw:       raw,
	}, nil
}
