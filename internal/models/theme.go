// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ThemeStatus tracks a theme request through its generation lifecycle.
//
// requested → building when the tracking issue is created, or → failed when
// issue creation errors. building → ready is flipped by the external theme
// generation job, never by this application. Enabled is toggled
// independently of status.
type ThemeStatus string

const (
	ThemeStatusRequested ThemeStatus = "requested"
	ThemeStatusBuilding  ThemeStatus = "building"
	ThemeStatusReady     ThemeStatus = "ready"
	ThemeStatusFailed    ThemeStatus = "failed"
)

// Theme represents a generated (or in-progress) storefront visual variant
// tied to an event. IssueNumber and IssueURL correlate the row with the
// GitHub issue that triggered the generation job.
type Theme struct {
	ID          uuid.UUID   `json:"id"`
	EventID     uuid.UUID   `json:"event_id"`
	Title       string      `json:"title"`
	Notes       *string     `json:"notes,omitempty"`
	Status      ThemeStatus `json:"status"`
	Enabled     bool        `json:"enabled"`
	IssueNumber *int        `json:"issue_number,omitempty"`
	IssueURL    *string     `json:"issue_url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsActive returns true if the theme is eligible for storefront display.
func (t *Theme) IsActive() bool {
	return t.Status == ThemeStatusReady && t.Enabled
}
