package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vmunix/trackarr/pkg/tracks"
)

// Client wraps HTTP calls to the trackarr server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new trackarr API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) put(path string, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) post(path string, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) delete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Users returns all users with stored rules.
func (c *Client) Users() ([]string, error) {
	var resp struct {
		Users []string `json:"users"`
	}
	if err := c.get("/api/v1/users", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// Rules returns a user's rule set.
func (c *Client) Rules(userID string) (*tracks.RuleSet, error) {
	var set tracks.RuleSet
	if err := c.get("/api/v1/users/"+userID+"/rules", &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// PutRulesResponse is the server's reply to a rule set replacement.
type PutRulesResponse struct {
	tracks.RuleSet
	Warnings []string `json:"warnings"`
}

// SetRules replaces a user's rule set.
func (c *Client) SetRules(userID string, set *tracks.RuleSet) (*PutRulesResponse, error) {
	var resp PutRulesResponse
	if err := c.put("/api/v1/users/"+userID+"/rules", set, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteRules removes a user's rule set.
func (c *Client) DeleteRules(userID string) error {
	return c.delete("/api/v1/users/" + userID + "/rules")
}

// ResolveRequest is the dry-run resolution request.
type ResolveRequest struct {
	UserID               string          `json:"userId"`
	SeriesID             string          `json:"seriesId,omitempty"`
	LibraryID            string          `json:"libraryId,omitempty"`
	Streams              []tracks.Stream `json:"streams"`
	CurrentAudioIndex    *int            `json:"currentAudioIndex,omitempty"`
	CurrentSubtitleIndex *int            `json:"currentSubtitleIndex,omitempty"`
}

// ResolveResponse is the dry-run resolution result.
type ResolveResponse struct {
	Changed       bool   `json:"changed"`
	Scope         string `json:"scope"`
	AudioIndex    *int   `json:"audioIndex"`
	SubtitleIndex *int   `json:"subtitleIndex"`
}

// Resolve runs a dry-run resolution on the server.
func (c *Client) Resolve(req ResolveRequest) (*ResolveResponse, error) {
	var resp ResolveResponse
	if err := c.post("/api/v1/resolve", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status returns daemon status.
func (c *Client) Status() (map[string]any, error) {
	var resp map[string]any
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
