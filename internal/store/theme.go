// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"nightmarket/internal/models"
)

// ThemeStore handles all theme database operations. Status transitions are
// driven by the lifecycle service in internal/themes; the external
// generation job flips building → ready directly in the database.
type ThemeStore struct {
	db *sql.DB
}

// NewThemeStore creates a new ThemeStore.
func NewThemeStore(db *sql.DB) *ThemeStore {
	return &ThemeStore{db: db}
}

// themeColumns lists the columns selected in theme queries.
const themeColumns = `id, event_id, title, notes, status, enabled, issue_number, issue_url, created_at, updated_at`

// scanTheme scans a theme row from the result set.
func scanTheme(scanner interface{ Scan(...any) error }) (*models.Theme, error) {
	var t models.Theme
	err := scanner.Scan(
		&t.ID, &t.EventID, &t.Title, &t.Notes, &t.Status, &t.Enabled,
		&t.IssueNumber, &t.IssueURL, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all themes ordered by creation date descending.
func (s *ThemeStore) List() ([]models.Theme, error) {
	return s.list(`SELECT ` + themeColumns + ` FROM themes ORDER BY created_at DESC`)
}

// ListByEvent returns the themes requested for a single event, newest first.
func (s *ThemeStore) ListByEvent(eventID uuid.UUID) ([]models.Theme, error) {
	return s.list(`SELECT `+themeColumns+` FROM themes WHERE event_id = $1 ORDER BY created_at DESC`, eventID)
}

func (s *ThemeStore) list(query string, args ...any) ([]models.Theme, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var items []models.Theme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a theme by its UUID. Returns nil if not found.
func (s *ThemeStore) FindByID(id uuid.UUID) (*models.Theme, error) {
	row := s.db.QueryRow(`SELECT `+themeColumns+` FROM themes WHERE id = $1`, id)
	t, err := scanTheme(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find theme by id: %w", err)
	}
	return t, nil
}

// FindActive returns the theme currently eligible for storefront display:
// ready, enabled, most recently updated. No uniqueness is enforced at the
// store layer — if several themes qualify, the last-updated one wins.
// Returns nil if no theme is active.
func (s *ThemeStore) FindActive() (*models.Theme, error) {
	row := s.db.QueryRow(`
		SELECT ` + themeColumns + `
		FROM themes
		WHERE status = 'ready' AND enabled = TRUE
		ORDER BY updated_at DESC
		LIMIT 1
	`)
	t, err := scanTheme(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active theme: %w", err)
	}
	return t, nil
}

// Create inserts a new theme row in the requested state and returns it with
// the generated ID.
func (s *ThemeStore) Create(t *models.Theme) (*models.Theme, error) {
	row := s.db.QueryRow(`
		INSERT INTO themes (event_id, title, notes, status, enabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+themeColumns,
		t.EventID, t.Title, t.Notes, models.ThemeStatusRequested, false,
	)
	created, err := scanTheme(row)
	if err != nil {
		return nil, fmt.Errorf("create theme: %w", err)
	}
	return created, nil
}

// MarkBuilding transitions a theme to the building state and records the
// tracking issue created for it. Returns the updated row.
func (s *ThemeStore) MarkBuilding(id uuid.UUID, issueNumber int, issueURL string) (*models.Theme, error) {
	row := s.db.QueryRow(`
		UPDATE themes SET status = $1, issue_number = $2, issue_url = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+themeColumns,
		models.ThemeStatusBuilding, issueNumber, nullIfEmpty(issueURL), id,
	)
	t, err := scanTheme(row)
	if err != nil {
		return nil, fmt.Errorf("mark theme building: %w", err)
	}
	return t, nil
}

// MarkFailed transitions a theme to the failed state. The row is kept as an
// audit artifact rather than deleted.
func (s *ThemeStore) MarkFailed(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE themes SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.ThemeStatusFailed, id)
	if err != nil {
		return fmt.Errorf("mark theme failed: %w", err)
	}
	return nil
}

// SetEnabled updates only the enabled flag; status is never touched here.
// Returns the updated row.
func (s *ThemeStore) SetEnabled(id uuid.UUID, enabled bool) (*models.Theme, error) {
	row := s.db.QueryRow(`
		UPDATE themes SET enabled = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+themeColumns,
		enabled, id,
	)
	t, err := scanTheme(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set theme enabled: %w", err)
	}
	return t, nil
}

// Delete removes a theme by ID.
func (s *ThemeStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM themes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete theme: %w", err)
	}
	return nil
}

// nullIfEmpty converts an empty string to a SQL NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
