package flipper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the flag service's read and write endpoints. It relies on
// the http.Client timeout for deadlines; there is no per-request cancellation.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL (e.g. http://localhost:8080/api)
// with a 10-second timeout.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Dashboard fetches the resolved flags and dashboard metadata for a user.
func (c *Client) Dashboard(userID string) (DashboardData, error) {
	var data DashboardData
	body, err := c.get("/dashboard?userId=" + url.QueryEscape(userID))
	if err != nil {
		return data, err
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return data, fmt.Errorf("parsing dashboard response: %w", err)
	}
	return data, nil
}

// Experiment fetches the A/B assignment for a user.
func (c *Client) Experiment(userID string) (ExperimentData, error) {
	var data ExperimentData
	body, err := c.get("/experiment?userId=" + url.QueryEscape(userID))
	if err != nil {
		return data, err
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return data, fmt.Errorf("parsing experiment response: %w", err)
	}
	return data, nil
}

// Features fetches the full flag catalogue. Malformed entries are dropped;
// only a transport failure or a non-array body is an error.
func (c *Client) Features() ([]FeatureFlag, error) {
	body, err := c.get("/flipper/features")
	if err != nil {
		return nil, err
	}
	flags, err := decodeCatalogue(body)
	if err != nil {
		return nil, fmt.Errorf("parsing catalogue response: %w", err)
	}
	return flags, nil
}

// Enable turns a flag fully on.
func (c *Client) Enable(name string) error {
	return c.post("/flipper/features/"+url.PathEscape(name)+"/enable", nil)
}

// Disable turns a flag off. The service treats disabling an unknown name as
// creating it, so this is also the flag-creation path.
func (c *Client) Disable(name string) error {
	return c.post("/flipper/features/"+url.PathEscape(name)+"/disable", nil)
}

// SetPercentage sets a flag's rollout percentage.
func (c *Client) SetPercentage(name string, percentage int) error {
	return c.post("/flipper/features/"+url.PathEscape(name)+"/percentage",
		map[string]int{"percentage": percentage})
}

// AddActor registers an actor id on a flag.
func (c *Client) AddActor(name, actorID string) error {
	return c.post("/flipper/features/"+url.PathEscape(name)+"/actors",
		map[string]string{"actorId": actorID})
}

// get performs a GET and returns the body for 2xx responses.
func (c *Client) get(path string) ([]byte, error) {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, body)
	}
	return body, nil
}

// post performs a POST with an optional JSON body and checks for 2xx.
func (c *Client) post(path string, payload any) error {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	resp, err := c.http.Post(c.baseURL+path, "application/json", reqBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, body)
	}
	return nil
}
