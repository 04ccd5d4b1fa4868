// Package client talks to a running rolodex server and exposes the same
// loader and action as the in-process routes.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"rolodex/internal/contacts"
	"rolodex/internal/domain"
	"rolodex/internal/routes"
)

const DefaultTimeout = 10 * time.Second

// Client is an HTTP backend for the terminal browser
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Redirects are never followed.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		clone := *hc
		c.http = &clone
	}
}

// WithLogger sets the client's logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base:   base,
		http:   &http.Client{Timeout: DefaultTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	c.logger = c.logger.Named("client")
	return c, nil
}

// Load fetches the root loader data for the location u
func (c *Client) Load(ctx context.Context, u *url.URL) (routes.RootData, error) {
	var data routes.RootData
	if err := c.getJSON(ctx, c.resolve("/", u.RawQuery), &data); err != nil {
		return routes.RootData{}, fmt.Errorf("%w: %w", routes.ErrDataFetch, err)
	}
	if data.Contacts == nil {
		data.Contacts = []domain.Contact{}
	}
	return data, nil
}

// Act submits the New form and returns the server's redirect
func (c *Client) Act(ctx context.Context) (routes.Redirect, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve("/", ""), strings.NewReader(""))
	if err != nil {
		return routes.Redirect{}, fmt.Errorf("%w: %w", routes.ErrDataCreate, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return routes.Redirect{}, fmt.Errorf("%w: %w", routes.ErrDataCreate, err)
	}
	defer drain(resp)

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return routes.Redirect{}, fmt.Errorf("%w: %w", routes.ErrDataCreate, statusError(resp))
	}
	loc, err := resp.Location()
	if err != nil {
		return routes.Redirect{}, fmt.Errorf("%w: %w", routes.ErrDataCreate, err)
	}
	c.logger.Debug("created contact", zap.String("location", loc.Path))
	return routes.Redirect{Location: loc.Path, Status: resp.StatusCode}, nil
}

// Contact fetches one contact; unknown ids yield contacts.ErrNotFound
func (c *Client) Contact(ctx context.Context, id string) (domain.Contact, error) {
	var contact domain.Contact
	if err := c.getJSON(ctx, c.resolve(routes.ContactPath(id), ""), &contact); err != nil {
		return domain.Contact{}, fmt.Errorf("load contact %s: %w", id, err)
	}
	return contact, nil
}

func (c *Client) resolve(path, rawQuery string) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + path
	u.RawPath = ""
	u.RawQuery = rawQuery
	return u.String()
}

func (c *Client) getJSON(ctx context.Context, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer drain(resp)
	c.logger.Debug("get",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return contacts.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError reads the server's JSON error message when there is one
func statusError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return fmt.Errorf("server returned %s: %s", resp.Status, payload.Error)
	}
	return errors.New("server returned " + resp.Status)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
