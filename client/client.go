// Package client is a Go API client for the storefront server. It holds
// the session cookie in a jar, acquires the anti-forgery token on demand,
// and keeps a local Store mirroring the caller's favorites and cart.
package client

import (
	"bytes"              // Request body buffers
	"context"            // Request cancellation
	"encoding/json"      // Payload codec
	"io"                 // Response body reading
	"net/http"           // HTTP transport
	"net/http/cookiejar" // Session cookie storage
	"strings"            // Method classification
)

// csrfHeader must match the header the server's guard reads
const csrfHeader = "X-CSRF-Token"

// Client talks to one storefront server on behalf of one user.
// It is not safe for concurrent use, matching its browser-tab origin.
type Client struct {
	baseURL   string       // Server base URL, no trailing slash
	http      *http.Client // Transport with a cookie jar
	store     *Store       // Local favorites/cart mirror
	csrfToken string       // Cached anti-forgery token, fetched lazily
}

// New creates a client for the given base URL with a fresh cookie jar
// and state mirror
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil) // Holds the session cookie
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"), // Normalize the base
		http:    &http.Client{Jar: jar},          // Cookie-aware transport
		store:   NewStore(),                      // Empty mirror
	}, nil
}

// Store exposes the local state mirror
func (c *Client) Store() *Store {
	return c.store
}

// envelope is the common response wrapper
type envelope struct {
	Success bool   `json:"success"` // Outcome flag
	Message string `json:"message"` // Failure detail
	Code    string `json:"code"`    // "csrf" on token rejection
}

// isMutating reports whether the method must carry the anti-forgery token
func isMutating(method string) bool {
	return method != http.MethodGet && method != http.MethodHead && method != http.MethodOptions
}

// do sends one request. Mutating methods acquire the anti-forgery token
// first; a rejection carrying code "csrf" refreshes the token and retries
// the original request exactly once, tolerating token rotation without
// looping.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return err // Payload not serializable
		}
	}
	// Register and login run before any session exists, so the server
	// exempts them from the guard and no token can be fetched for them
	exempt := path == "/api/auth/register" || path == "/api/auth/login"
	if isMutating(method) && !exempt && c.csrfToken == "" {
		// First mutating call: acquire a token up front
		if err := c.fetchCSRFToken(ctx); err != nil {
			return err
		}
	}
	err := c.send(ctx, method, path, payload, out)
	if apiErr, ok := err.(*APIError); ok && apiErr.IsCSRF() {
		// Stale token: refresh and retry once, then give up
		if err := c.fetchCSRFToken(ctx); err != nil {
			return err
		}
		return c.send(ctx, method, path, payload, out)
	}
	return err
}

// send performs a single HTTP round trip and decodes the envelope
func (c *Client) send(ctx context.Context, method, path string, payload []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if isMutating(method) && c.csrfToken != "" {
		req.Header.Set(csrfHeader, c.csrfToken) // Echo the anti-forgery token
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err // Transport failure
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	// The envelope carries the outcome; the same bytes also hold the payload
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "malformed response"}
	}
	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message, Code: env.Code}
	}
	if out != nil {
		return json.Unmarshal(raw, out) // Decode the payload fields
	}
	return nil
}

// fetchCSRFToken acquires a fresh session-bound anti-forgery token
func (c *Client) fetchCSRFToken(ctx context.Context) error {
	var resp struct {
		CSRFToken string `json:"csrfToken"` // Issued token
	}
	if err := c.send(ctx, http.MethodGet, "/api/csrf-token", nil, &resp); err != nil {
		return err
	}
	c.csrfToken = resp.CSRFToken // Cache for subsequent mutating calls
	return nil
}
