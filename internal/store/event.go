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

// EventStore handles all event-related database operations.
type EventStore struct {
	db *sql.DB
}

// NewEventStore creates a new EventStore with the given database connection.
func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

// eventColumns lists the columns selected in event queries.
const eventColumns = `id, title, description, status, starts_at, ends_at, created_at, updated_at`

// scanEvent scans an event row from the result set.
func scanEvent(scanner interface{ Scan(...any) error }) (*models.Event, error) {
	var e models.Event
	err := scanner.Scan(
		&e.ID, &e.Title, &e.Description, &e.Status,
		&e.StartsAt, &e.EndsAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all events ordered by start time ascending, undated last.
func (s *EventStore) List() ([]models.Event, error) {
	return s.list(`SELECT ` + eventColumns + ` FROM events ORDER BY starts_at ASC NULLS LAST`)
}

// ListPublished returns events visible on the storefront, soonest first
// with undated events trailing.
func (s *EventStore) ListPublished() ([]models.Event, error) {
	return s.list(`SELECT ` + eventColumns + ` FROM events WHERE status = 'published' ORDER BY starts_at ASC NULLS LAST`)
}

func (s *EventStore) list(query string, args ...any) ([]models.Event, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var items []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

// FindByID retrieves an event by its UUID. Returns nil if not found.
func (s *EventStore) FindByID(id uuid.UUID) (*models.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find event by id: %w", err)
	}
	return e, nil
}

// Create inserts a new event and returns it with the generated ID.
func (s *EventStore) Create(e *models.Event) (*models.Event, error) {
	row := s.db.QueryRow(`
		INSERT INTO events (title, description, status, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+eventColumns,
		e.Title, e.Description, e.Status, e.StartsAt, e.EndsAt,
	)
	created, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

// Update modifies an existing event.
func (s *EventStore) Update(e *models.Event) error {
	_, err := s.db.Exec(`
		UPDATE events SET
			title = $1, description = $2, status = $3,
			starts_at = $4, ends_at = $5, updated_at = NOW()
		WHERE id = $6
	`, e.Title, e.Description, e.Status, e.StartsAt, e.EndsAt, e.ID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event by ID. Associated themes are removed by the
// ON DELETE CASCADE constraint.
func (s *EventStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// Count returns the number of events.
func (s *EventStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}
