// Package testutil provides an HTTP JSON client and assertion helpers for
// testing the console API and the flag simulator.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Client is an HTTP client for interacting with a test server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	t          *testing.T
}

// NewClient creates a client pointed at a test server.
func NewClient(t *testing.T, server *httptest.Server) *Client {
	return &Client{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		t:          t,
	}
}

// Response wraps an HTTP response with helper methods.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	t          *testing.T
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) {
	r.t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		r.t.Fatalf("failed to unmarshal response: %v\nbody: %s", err, string(r.Body))
	}
}

// JSONMap returns the response body as a map.
func (r *Response) JSONMap() map[string]any {
	r.t.Helper()
	var m map[string]any
	r.JSON(&m)
	return m
}

// AssertStatus asserts the response has the expected status code.
func (r *Response) AssertStatus(expected int) *Response {
	r.t.Helper()
	if r.StatusCode != expected {
		r.t.Errorf("expected status %d, got %d\nbody: %s", expected, r.StatusCode, string(r.Body))
	}
	return r
}

// AssertBodyContains asserts the response body contains the given substring.
func (r *Response) AssertBodyContains(substr string) *Response {
	r.t.Helper()
	if !strings.Contains(string(r.Body), substr) {
		r.t.Errorf("expected body to contain %q, got: %s", substr, string(r.Body))
	}
	return r
}

// Get performs a GET request.
func (c *Client) Get(path string) *Response {
	c.t.Helper()
	return c.do("GET", path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(path string, body any) *Response {
	c.t.Helper()
	return c.do("POST", path, body)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(path string, body any) *Response {
	c.t.Helper()
	return c.do("PATCH", path, body)
}

func (c *Client) do(method, path string, body any) *Response {
	c.t.Helper()

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		c.t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("failed to read response: %v", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    resp.Header,
		t:          c.t,
	}
}
