// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import "unicode/utf8"

const (
	maxNameLength  = 200
	maxSlugLength  = 200
	maxTitleLength = 200
)

// validateProduct checks product form input and returns a user-facing
// message, empty when the input is acceptable.
func validateProduct(name, slugValue string, priceCents int64) string {
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "Name is too long (200 characters max)."
	}
	if slugValue == "" {
		return "Slug could not be derived from the name."
	}
	if utf8.RuneCountInString(slugValue) > maxSlugLength {
		return "Slug is too long (200 characters max)."
	}
	if priceCents < 0 {
		return "Price cannot be negative."
	}
	return ""
}

// validateEvent checks event form input and returns a user-facing message,
// empty when the input is acceptable.
func validateEvent(title string) string {
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "Title is too long (200 characters max)."
	}
	return ""
}
