package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"tableflip.dev/todo/pkg/item"
)

// Client talks to a todo server over HTTP.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides http.DefaultClient.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithClientLogger sets the logger used for request tracing.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient returns a client for the server rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("remote: server url required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("remote: parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote: unsupported scheme %q", u.Scheme)
	}
	c := &Client{
		baseURL: u,
		http:    http.DefaultClient,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ Store = (*Client)(nil)

// List fetches every item.
func (c *Client) List(ctx context.Context) ([]item.Item, error) {
	var items []item.Item
	if err := c.do(ctx, http.MethodGet, c.baseURL.JoinPath("todos"), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a single item.
func (c *Client) Get(ctx context.Context, id string) (item.Item, error) {
	var out item.Item
	err := c.do(ctx, http.MethodGet, c.baseURL.JoinPath("todos", id), nil, &out)
	return out, err
}

// Create posts a new item; the server assigns identity and position.
func (c *Client) Create(ctx context.Context, draft item.Draft) (item.Item, error) {
	var out item.Item
	err := c.do(ctx, http.MethodPost, c.baseURL.JoinPath("todos"), draft, &out)
	return out, err
}

// Update replaces the item with the full payload.
func (c *Client) Update(ctx context.Context, it item.Item) (item.Item, error) {
	var out item.Item
	err := c.do(ctx, http.MethodPut, c.baseURL.JoinPath("todos", it.ID), it, &out)
	return out, err
}

// Delete removes the item.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL.JoinPath("todos", id), nil, nil)
}

// Reorder moves the item to position.
func (c *Client) Reorder(ctx context.Context, id string, position int) (item.Item, error) {
	var out item.Item
	body := ReorderRequest{ID: id, Position: position}
	err := c.do(ctx, http.MethodPut, c.baseURL.JoinPath("todos", "reorder", id), body, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method string, u *url.URL, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("remote: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("remote: read body: %w", err)
	}
	c.logger.Debug("remote call", "method", method, "path", u.Path, "code", resp.StatusCode)

	var env Envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("remote: decode envelope: %w", err)
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("remote: decode data: %w", err)
	}
	return nil
}
