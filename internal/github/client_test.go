package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"nightmarket/internal/config"
)

func testConfig() config.GitHub {
	return config.GitHub{Token: "test-token", Owner: "acme", Repo: "storefront"}
}

func TestCreateIssue_NotConfigured(t *testing.T) {
	c := New(config.GitHub{})

	_, err := c.CreateIssue(context.Background(), IssueRequest{Title: "x"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("CreateIssue with empty config: err = %v, want ErrNotConfigured", err)
	}
}

func TestCreateIssue_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq IssueRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Issue{
			Number:  42,
			Title:   gotReq.Title,
			State:   "open",
			HTMLURL: "https://github.com/acme/storefront/issues/42",
		})
	}))
	defer srv.Close()

	c := NewWithBaseURL(testConfig(), srv.URL)

	issue, err := c.CreateIssue(context.Background(), IssueRequest{
		Title:  "Neon storefront",
		Body:   "Generate a new storefront theme for the event.",
		Labels: []string{"theme"},
	})
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}

	if gotPath != "/repos/acme/storefront/issues" {
		t.Errorf("request path = %q, want /repos/acme/storefront/issues", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want Bearer test-token", gotAuth)
	}
	if issue.Number != 42 {
		t.Errorf("issue number = %d, want 42", issue.Number)
	}
	if issue.HTMLURL == "" {
		t.Error("issue HTMLURL is empty")
	}
}

// TestCreateIssue_DefaultLabels verifies empty labels are replaced with the
// fixed pair the generation workflow triggers on.
func TestCreateIssue_DefaultLabels(t *testing.T) {
	var gotReq IssueRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Issue{Number: 1})
	}))
	defer srv.Close()

	c := NewWithBaseURL(testConfig(), srv.URL)
	if _, err := c.CreateIssue(context.Background(), IssueRequest{Title: "t"}); err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}

	if len(gotReq.Labels) != 2 || gotReq.Labels[0] != "codex-request" || gotReq.Labels[1] != "theme" {
		t.Errorf("labels = %v, want [codex-request theme]", gotReq.Labels)
	}
}

func TestCreateIssue_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Validation Failed"}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(testConfig(), srv.URL)
	_, err := c.CreateIssue(context.Background(), IssueRequest{Title: "t"})
	if err == nil {
		t.Fatal("CreateIssue with API error: err = nil, want error")
	}
}
