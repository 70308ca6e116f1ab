// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package themes implements the theme request lifecycle: a requested theme
// row is correlated with a tracking issue that hands generation off to an
// external job.
//
// Status flow: requested → building once the issue exists, or → failed when
// issue creation errors. building → ready is written by the generation job
// out-of-band. A ready theme is then enabled or disabled freely without
// touching its status.
//
// The insert-then-update write is deliberately not atomic with issue
// creation: a crash between the two steps leaves a requested row with a
// live untracked issue. The window is accepted — rows stuck in requested
// or failed are visible in the admin for operator cleanup, and no
// automatic retry or reconciliation is attempted.
package themes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"nightmarket/internal/github"
	"nightmarket/internal/models"
)

// EventFinder looks up events referenced by theme requests.
// *store.EventStore satisfies it.
type EventFinder interface {
	FindByID(id uuid.UUID) (*models.Event, error)
}

// ThemeStore persists theme rows through their lifecycle transitions.
// *store.ThemeStore satisfies it.
type ThemeStore interface {
	Create(t *models.Theme) (*models.Theme, error)
	MarkBuilding(id uuid.UUID, issueNumber int, issueURL string) (*models.Theme, error)
	MarkFailed(id uuid.UUID) error
	SetEnabled(id uuid.UUID, enabled bool) (*models.Theme, error)
}

// IssueCreator opens tracking issues in the external issue tracker.
// *github.Client satisfies it.
type IssueCreator interface {
	CreateIssue(ctx context.Context, req github.IssueRequest) (*github.Issue, error)
}

// defaultIssueBody is used when a theme request carries no notes.
const defaultIssueBody = "Generate a new storefront theme for the event."

// Service orchestrates theme request creation and issue correlation.
// All collaborators are injected; the service holds no hidden state.
type Service struct {
	events EventFinder
	themes ThemeStore
	issues IssueCreator
}

// NewService creates a lifecycle service with the given collaborators.
func NewService(events EventFinder, themes ThemeStore, issues IssueCreator) *Service {
	return &Service{events: events, themes: themes, issues: issues}
}

// RequestTheme creates a theme row for the event and opens the tracking
// issue that triggers generation.
//
// Exactly one issue is created per successful call; no retry is attempted.
// On issue failure the row is marked failed and kept for auditability, and
// the underlying error is returned wrapped.
func (s *Service) RequestTheme(ctx context.Context, eventID uuid.UUID, title, notes string) (*models.Theme, *github.Issue, error) {
	title = strings.TrimSpace(title)
	if eventID == uuid.Nil || title == "" {
		return nil, nil, ErrMissingFields
	}

	event, err := s.events.FindByID(eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("look up event: %w", err)
	}
	if event == nil {
		return nil, nil, ErrEventNotFound
	}

	theme, err := s.themes.Create(&models.Theme{
		EventID: event.ID,
		Title:   title,
		Notes:   nullableNotes(notes),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create theme row: %w", err)
	}

	issue, err := s.issues.CreateIssue(ctx, github.IssueRequest{
		Title: title,
		Body:  issueBody(notes, event, theme),
	})
	if err != nil {
		slog.Error("theme issue creation failed", "theme_id", theme.ID, "error", err)
		if failErr := s.themes.MarkFailed(theme.ID); failErr != nil {
			slog.Error("mark theme failed errored", "theme_id", theme.ID, "error", failErr)
		}
		return nil, nil, fmt.Errorf("create tracking issue: %w", err)
	}

	updated, err := s.themes.MarkBuilding(theme.ID, issue.Number, issue.HTMLURL)
	if err != nil {
		// The issue exists but the row still says requested. Surface the
		// row we have rather than failing the whole request.
		slog.Error("mark theme building failed", "theme_id", theme.ID, "issue", issue.Number, "error", err)
		return theme, issue, nil
	}

	slog.Info("theme requested",
		"theme_id", updated.ID,
		"event_id", event.ID,
		"issue", issue.Number,
	)
	return updated, issue, nil
}

// SetEnabled toggles whether a theme is eligible for storefront display.
// Only the enabled flag changes; status is never touched, so disabling a
// building theme or re-enabling an enabled one is harmless.
func (s *Service) SetEnabled(ctx context.Context, themeID uuid.UUID, enabled bool) (*models.Theme, error) {
	theme, err := s.themes.SetEnabled(themeID, enabled)
	if err != nil {
		return nil, fmt.Errorf("set theme enabled: %w", err)
	}
	if theme == nil {
		return nil, ErrThemeNotFound
	}

	slog.Info("theme toggled", "theme_id", theme.ID, "enabled", enabled, "status", theme.Status)
	return theme, nil
}

// CreateIssue opens an ad-hoc issue independent of the theme table. Labels
// default to the fixed generation-trigger pair when omitted.
func (s *Service) CreateIssue(ctx context.Context, title, body string, labels []string) (*github.Issue, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	issue, err := s.issues.CreateIssue(ctx, github.IssueRequest{
		Title:  title,
		Body:   body,
		Labels: labels,
	})
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}

	slog.Info("issue created", "issue", issue.Number, "title", title)
	return issue, nil
}

// issueBody assembles the issue text: the requester's notes (or a default
// sentence) followed by identifier lines the generation job parses.
func issueBody(notes string, event *models.Event, theme *models.Theme) string {
	body := strings.TrimSpace(notes)
	if body == "" {
		body = defaultIssueBody
	}

	lines := []string{
		body,
		"",
		"Event: " + event.Title,
		"Event ID: " + event.ID.String(),
		"Theme ID: " + theme.ID.String(),
	}
	return strings.Join(lines, "\n")
}

// nullableNotes trims notes and converts the empty result to NULL.
func nullableNotes(notes string) *string {
	trimmed := strings.TrimSpace(notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
