package gateway

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

	"github.com/google/uuid"
)

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty string means no credential is available.
type TokenSource interface {
	Token() string
}

// Client is the single typed entry point to the remote dealer API. Every
// module's remote adapter goes through Do, so the whole program shares one
// timeout and one error-mapping policy.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

// New creates a gateway client for the given API base URL.
func New(baseURL string, timeout time.Duration, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// URL returns the absolute URL for an API path.
func (c *Client) URL(path string) string {
	return c.baseURL + path
}

// Do performs one JSON request. body and out may be nil. When authed is true
// the current bearer token is attached. Any non-2xx status maps to *APIError
// carrying the server's message; a 401 additionally matches ErrUnauthorized
// so callers can tear the session down. Transport failures are wrapped as-is.
func (c *Client) Do(ctx context.Context, method, path string, authed bool, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if authed {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(method, path, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// Get is shorthand for an authenticated GET.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, true, nil, out)
}

// Post is shorthand for an unauthenticated POST.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, false, body, out)
}

// PostAuthed is shorthand for a bearer-authenticated POST.
func (c *Client) PostAuthed(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, true, body, out)
}

// Download streams a binary response (e.g. an invoice PDF) into w.
func (c *Client) Download(ctx context.Context, path string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return fmt.Errorf("build GET %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(http.MethodGet, path, resp)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read GET %s: %w", path, err)
	}
	return nil
}

func (c *Client) apiError(method, path string, resp *http.Response) error {
	message := "Request failed. Please try again."

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err == nil && body.Message != "" {
		message = body.Message
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("request rejected as unauthorized", "method", method, "path", path, "message", message)
	} else {
		c.logger.Error("dealer api request failed",
			"method", method, "path", path, "status", resp.StatusCode, "message", message)
	}
	return &APIError{Status: resp.StatusCode, Message: message}
}
