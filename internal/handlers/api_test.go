package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"nightmarket/internal/github"
	"nightmarket/internal/models"
	"nightmarket/internal/themes"
)

// fakeEventFinder serves a single event by ID.
type fakeEventFinder struct {
	event *models.Event
}

func (f *fakeEventFinder) FindByID(id uuid.UUID) (*models.Event, error) {
	if f.event != nil && f.event.ID == id {
		return f.event, nil
	}
	return nil, nil
}

// fakeThemeStore records lifecycle transitions in memory.
type fakeThemeStore struct {
	created    *models.Theme
	markedFail bool
}

func (f *fakeThemeStore) Create(t *models.Theme) (*models.Theme, error) {
	t.ID = uuid.New()
	t.Status = models.ThemeStatusRequested
	f.created = t
	return t, nil
}

func (f *fakeThemeStore) MarkBuilding(id uuid.UUID, issueNumber int, issueURL string) (*models.Theme, error) {
	f.created.Status = models.ThemeStatusBuilding
	f.created.IssueNumber = &issueNumber
	f.created.IssueURL = &issueURL
	return f.created, nil
}

func (f *fakeThemeStore) MarkFailed(id uuid.UUID) error {
	f.markedFail = true
	if f.created != nil {
		f.created.Status = models.ThemeStatusFailed
	}
	return nil
}

func (f *fakeThemeStore) SetEnabled(id uuid.UUID, enabled bool) (*models.Theme, error) {
	if f.created == nil || f.created.ID != id {
		return nil, nil
	}
	f.created.Enabled = enabled
	return f.created, nil
}

// fakeIssueCreator returns a canned issue or error.
type fakeIssueCreator struct {
	issue *github.Issue
	err   error
	got   github.IssueRequest
}

func (f *fakeIssueCreator) CreateIssue(ctx context.Context, req github.IssueRequest) (*github.Issue, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.issue, nil
}

func testEvent() *models.Event {
	return &models.Event{
		ID:     uuid.New(),
		Title:  "Winter Launch Party",
		Status: models.EventStatusPublished,
	}
}

func newTestAPI(event *models.Event, store *fakeThemeStore, issues *fakeIssueCreator) *API {
	svc := themes.NewService(&fakeEventFinder{event: event}, store, issues)
	return NewAPI(svc)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAPIRequestTheme_Success(t *testing.T) {
	event := testEvent()
	store := &fakeThemeStore{}
	issues := &fakeIssueCreator{issue: &github.Issue{Number: 42, HTMLURL: "https://github.com/acme/themes/issues/42"}}
	api := newTestAPI(event, store, issues)

	body := `{"eventId":"` + event.ID.String() + `","title":"Merry Christmas","notes":"Snow and lights."}`
	w := postJSON(t, api.RequestTheme, "/api/themes", body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Theme models.Theme `json:"theme"`
		Issue github.Issue `json:"issue"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Theme.Status != models.ThemeStatusBuilding {
		t.Errorf("theme status: got %q, want %q", resp.Theme.Status, models.ThemeStatusBuilding)
	}
	if resp.Theme.IssueNumber == nil || *resp.Theme.IssueNumber != 42 {
		t.Error("theme should carry the issue number")
	}
	if resp.Issue.Number != 42 {
		t.Errorf("issue number: got %d, want 42", resp.Issue.Number)
	}

	// The issue body must carry the correlation identifiers.
	if !strings.Contains(issues.got.Body, "Event ID: "+event.ID.String()) {
		t.Error("issue body should contain the event ID line")
	}
	if !strings.Contains(issues.got.Body, "Theme ID: "+resp.Theme.ID.String()) {
		t.Error("issue body should contain the theme ID line")
	}
	if !strings.Contains(issues.got.Body, "Snow and lights.") {
		t.Error("issue body should contain the requester notes")
	}
}

func TestAPIRequestTheme_InvalidJSON(t *testing.T) {
	api := newTestAPI(testEvent(), &fakeThemeStore{}, &fakeIssueCreator{})

	w := postJSON(t, api.RequestTheme, "/api/themes", `{not json`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	assertJSONError(t, w)
}

func TestAPIRequestTheme_BadUUID(t *testing.T) {
	api := newTestAPI(testEvent(), &fakeThemeStore{}, &fakeIssueCreator{})

	w := postJSON(t, api.RequestTheme, "/api/themes", `{"eventId":"not-a-uuid","title":"X"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	assertJSONError(t, w)
}

func TestAPIRequestTheme_MissingFields(t *testing.T) {
	api := newTestAPI(testEvent(), &fakeThemeStore{}, &fakeIssueCreator{})

	w := postJSON(t, api.RequestTheme, "/api/themes", `{"title":"No event"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	assertJSONError(t, w)
}

func TestAPIRequestTheme_EventNotFound(t *testing.T) {
	store := &fakeThemeStore{}
	api := newTestAPI(testEvent(), store, &fakeIssueCreator{})

	body := `{"eventId":"` + uuid.NewString() + `","title":"Orphan"}`
	w := postJSON(t, api.RequestTheme, "/api/themes", body)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if store.created != nil {
		t.Error("no theme row should be created for an unknown event")
	}
	assertJSONError(t, w)
}

func TestAPIRequestTheme_IssueCreationFails(t *testing.T) {
	event := testEvent()
	store := &fakeThemeStore{}
	issues := &fakeIssueCreator{err: github.ErrNotConfigured}
	api := newTestAPI(event, store, issues)

	body := `{"eventId":"` + event.ID.String() + `","title":"Doomed"}`
	w := postJSON(t, api.RequestTheme, "/api/themes", body)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	// The row is created first and kept, marked failed.
	if store.created == nil {
		t.Fatal("theme row should be created before issue creation is attempted")
	}
	if !store.markedFail {
		t.Error("theme row should be marked failed when issue creation errors")
	}
	assertJSONError(t, w)

	// The operator-facing setup guidance must reach the caller.
	if !strings.Contains(w.Body.String(), "GITHUB_TOKEN") {
		t.Errorf("error body should carry the setup message, got %s", w.Body.String())
	}
}

func TestAPICreateIssue_Success(t *testing.T) {
	issues := &fakeIssueCreator{issue: &github.Issue{Number: 7, HTMLURL: "https://github.com/acme/themes/issues/7"}}
	api := newTestAPI(nil, &fakeThemeStore{}, issues)

	w := postJSON(t, api.CreateIssue, "/api/github/issue",
		`{"title":"Regenerate theme","body":"Please rebuild.","labels":["urgent"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Issue github.Issue `json:"issue"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Issue.Number != 7 {
		t.Errorf("issue number: got %d, want 7", resp.Issue.Number)
	}

	if issues.got.Title != "Regenerate theme" {
		t.Errorf("issue title: got %q", issues.got.Title)
	}
	if len(issues.got.Labels) != 1 || issues.got.Labels[0] != "urgent" {
		t.Errorf("labels should be passed through, got %v", issues.got.Labels)
	}
}

func TestAPICreateIssue_TitleRequired(t *testing.T) {
	api := newTestAPI(nil, &fakeThemeStore{}, &fakeIssueCreator{})

	w := postJSON(t, api.CreateIssue, "/api/github/issue", `{"body":"no title"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	assertJSONError(t, w)
}

func TestAPICreateIssue_NotConfigured(t *testing.T) {
	api := newTestAPI(nil, &fakeThemeStore{}, &fakeIssueCreator{err: github.ErrNotConfigured})

	w := postJSON(t, api.CreateIssue, "/api/github/issue", `{"title":"X"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	assertJSONError(t, w)
	if !strings.Contains(w.Body.String(), "GITHUB_TOKEN") {
		t.Errorf("error body should carry the setup message, got %s", w.Body.String())
	}
}

func TestAPICreateIssue_UpstreamError(t *testing.T) {
	api := newTestAPI(nil, &fakeThemeStore{}, &fakeIssueCreator{err: errors.New("boom")})

	w := postJSON(t, api.CreateIssue, "/api/github/issue", `{"title":"X"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	assertJSONError(t, w)
}

// assertJSONError checks the response is JSON with a non-empty error field.
func assertJSONError(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error response is not JSON: %v", err)
	}
	if resp["error"] == "" {
		t.Error("error response should have a non-empty error field")
	}
}
