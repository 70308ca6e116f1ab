// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package themes

import "errors"

// Sentinel errors returned by the lifecycle service. The API layer maps
// them onto HTTP statuses; their messages are safe to show to callers.
var (
	// ErrMissingFields is returned when a theme request lacks an event ID
	// or title.
	ErrMissingFields = errors.New("event and title are required to request a theme")

	// ErrTitleRequired is returned when an ad-hoc issue has no title.
	ErrTitleRequired = errors.New("issue title is required")

	// ErrEventNotFound is returned when the referenced event does not exist.
	ErrEventNotFound = errors.New("selected event does not exist")

	// ErrThemeNotFound is returned when the referenced theme does not exist.
	ErrThemeNotFound = errors.New("theme does not exist")
)
