// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package github provides a minimal client for the GitHub issues REST API.
// Theme requests are handed off to an external generation job by opening a
// labeled issue in the configured repository; the job reports back by
// updating the theme row directly.
//
// The client is constructed explicitly and injected into its consumers —
// there is no package-level singleton, so tests can point it at a local
// httptest server.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"nightmarket/internal/config"
)

// DefaultLabels is applied to created issues when the caller provides none.
// The generation job's workflow triggers on this label pair.
var DefaultLabels = []string{"codex-request", "theme"}

// ErrNotConfigured is returned when the token or target repository is
// missing. The message doubles as operator-facing setup guidance.
var ErrNotConfigured = errors.New(
	"missing GitHub configuration: set GITHUB_TOKEN and provide owner/repo via " +
		"GITHUB_REPO_OWNER + GITHUB_REPO_NAME (or a combined slug in either variable)")

// IssueRequest describes the issue to create.
type IssueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

// Issue is the subset of the GitHub issue payload the application uses.
type Issue struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	State   string `json:"state"`
	HTMLURL string `json:"html_url"`
}

// Client talks to the GitHub issues API for a single repository.
type Client struct {
	cfg     config.GitHub
	baseURL string
	client  *http.Client
}

// New creates a GitHub client from the resolved configuration. The
// configuration may be incomplete; CreateIssue reports ErrNotConfigured at
// call time so the rest of the application keeps working without GitHub.
func New(cfg config.GitHub) *Client {
	return &Client{
		cfg:     cfg,
		baseURL: "https://api.github.com",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithBaseURL creates a client pointed at an alternate API root.
// Used by tests and GitHub Enterprise deployments.
func NewWithBaseURL(cfg config.GitHub, baseURL string) *Client {
	c := New(cfg)
	c.baseURL = baseURL
	return c
}

// Configured returns true when the client has everything it needs to
// create issues.
func (c *Client) Configured() bool {
	return c.cfg.Complete()
}

// CreateIssue opens a new issue in the configured repository. Empty labels
// are replaced with DefaultLabels.
func (c *Client) CreateIssue(ctx context.Context, req IssueRequest) (*Issue, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	if len(req.Labels) == 0 {
		req.Labels = DefaultLabels
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("github marshal: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/issues", c.baseURL, c.cfg.Owner, c.cfg.Repo)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/vnd.github+json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("github http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("github read body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("github API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var issue Issue
	if err := json.Unmarshal(respBody, &issue); err != nil {
		return nil, fmt.Errorf("github unmarshal: %w", err)
	}

	return &issue, nil
}
