// Package metro is the HTTP client for the collaborator metro API. Two
// client surfaces exist, general (auth + passenger endpoints) and admin
// (management endpoints), each with its own interceptor pair but sharing
// the one token store and 401 sink.
package metro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/transitline/metro-console/internal/core/domain"
	"github.com/transitline/metro-console/internal/core/ports"
)

const (
	SurfaceGeneral = "general"
	SurfaceAdmin   = "admin"

	defaultTimeout = 15 * time.Second
)

// Config captures the settings for one client surface.
type Config struct {
	BaseURL string
	Surface string // SurfaceGeneral or SurfaceAdmin
	Timeout time.Duration
}

type Client struct {
	base    *url.URL
	surface string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a client surface. onUnauthorized receives the rejected
// token whenever the collaborator answers 401; pass the session manager's
// Invalidate method (possibly late-bound through a closure).
func NewClient(cfg Config, tokens ports.TokenStore, onUnauthorized UnauthorizedFunc, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("metro: parse base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:    base,
		surface: cfg.Surface,
		log:     log,
		http: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				base:           http.DefaultTransport,
				tokens:         tokens,
				surface:        cfg.Surface,
				onUnauthorized: onUnauthorized,
			},
		},
	}, nil
}

// apiError is the collaborator's error envelope.
type apiError struct {
	Detail string `json:"detail"`
}

// do issues a JSON request and decodes the response into out (may be nil).
// Status codes map onto the domain error taxonomy; 401 means the session the
// request rode on is no longer valid.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrSessionExpired
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrConflict
	case resp.StatusCode >= 400:
		return fmt.Errorf("metro api: %s: %s", resp.Status, readDetail(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("metro api: decode %s %s: %w", method, path, err)
	}
	return nil
}

// doAuth issues a credentials request (login/register). Unlike do, any 4xx is
// a credentials rejection: the backend's detail message is surfaced verbatim
// under domain.ErrInvalidCredentials.
func (c *Client) doAuth(ctx context.Context, path string, in any) (*authEnvelope, error) {
	resp, err := c.send(ctx, http.MethodPost, path, in)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, readDetail(resp.Body))
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("metro api: %s", resp.Status)
	}

	var env authEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("metro api: decode auth response: %w", err)
	}
	if env.AccessToken == "" || env.User == nil {
		return nil, fmt.Errorf("metro api: malformed auth response")
	}
	return &env, nil
}

func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("metro api: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return nil, fmt.Errorf("metro api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}
	return resp, nil
}

func readDetail(r io.Reader) string {
	var e apiError
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&e); err != nil || e.Detail == "" {
		return "request rejected"
	}
	return e.Detail
}
