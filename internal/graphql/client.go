package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gql "github.com/machinebox/graphql"
)

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 15 * time.Second

// Observer is notified once per request with the operation name, duration and outcome.
type Observer interface {
	ObserveRequest(operation string, elapsed time.Duration, err error)
}

// Client runs GraphQL queries against one subgraph endpoint.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	observer   Observer
	gql        *gql.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient uses a copy of client for requests. The caller's client is never modified.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			cp := *client
			c.httpClient = &cp
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithObserver installs a request observer.
func WithObserver(o Observer) ClientOption {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a GraphQL client for the endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		headers:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Transport = &statusTransport{next: c.httpClient.Transport}
	c.gql = gql.NewClient(endpoint, gql.WithHTTPClient(c.httpClient))
	return c
}

// Request sends query with variables and decodes the data field into out.
// A response without data is an error.
func (c *Client) Request(ctx context.Context, query string, variables map[string]interface{}, out interface{}) (err error) {
	if c.observer != nil {
		start := time.Now()
		op := OperationName(query)
		defer func() {
			c.observer.ObserveRequest(op, time.Since(start), err)
		}()
	}

	req := gql.NewRequest(query)
	for k, v := range variables {
		req.Var(k, v)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	var data json.RawMessage
	if err := c.gql.Run(ctx, req, &data); err != nil {
		return err
	}
	if len(data) == 0 || string(data) == "null" {
		return fmt.Errorf("response has no data")
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// statusTransport turns non-2xx responses into *StatusError before the body is decoded.
type statusTransport struct {
	next http.RoundTripper
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	resp, err := next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return resp, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// OperationName extracts the operation name from a query document, or "anonymous".
func OperationName(query string) string {
	fields := strings.Fields(query)
	for i, field := range fields {
		if field != "query" || i+1 >= len(fields) {
			continue
		}
		name := fields[i+1]
		if idx := strings.IndexAny(name, "({"); idx >= 0 {
			name = name[:idx]
		}
		if name != "" {
			return name
		}
		break
	}
	return "anonymous"
}
