// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
// Slugs double as storefront theme flags: the flag for a theme titled
// "Merry Christmas!" is "merry-christmas".
package slug

import (
	"regexp"
	"strings"
)

// nonAlphanumericRun matches one or more consecutive characters that are
// neither lowercase letters nor digits. Each run becomes a single hyphen.
var nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
//
// The result is deterministic and idempotent: Generate(Generate(s)) ==
// Generate(s) for any input.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumericRun.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}
