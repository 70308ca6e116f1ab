// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storefront

import (
	"strings"

	"nightmarket/internal/models"
)

// fallbackImages is cycled through deterministically for products without
// an explicit or curated image, so a product keeps the same picture across
// renders.
var fallbackImages = []string{
	"https://images.unsplash.com/photo-1521572267360-ee0c2909d518?auto=format&fit=crop&w=1200&q=80",
	"https://images.unsplash.com/photo-1523275335684-37898b6baf30?auto=format&fit=crop&w=1200&q=80",
	"https://images.unsplash.com/photo-1542293787938-4d36393d5a29?auto=format&fit=crop&w=1200&q=80",
	"https://images.unsplash.com/photo-1512499617640-c2f999098c01?auto=format&fit=crop&w=1200&q=80",
	"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&w=1200&q=80",
	"https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?auto=format&fit=crop&w=1200&q=80",
}

// defaultImage is the last-resort product picture.
const defaultImage = "https://images.unsplash.com/photo-1542293787938-4d36393d5a29?auto=format&fit=crop&w=1200&q=80"

// curatedByKeyword maps catalog keywords to hand-picked photos. Matched
// against the product slug and name, first hit wins.
var curatedByKeyword = []struct {
	keyword string
	url     string
}{
	{"tee", "https://images.unsplash.com/photo-1521572267360-ee0c2909d518?auto=format&fit=crop&w=1200&q=80"},
	{"shirt", "https://images.unsplash.com/photo-1521572267360-ee0c2909d518?auto=format&fit=crop&w=1200&q=80"},
	{"apparel", "https://images.unsplash.com/photo-1521572267360-ee0c2909d518?auto=format&fit=crop&w=1200&q=80"},
	{"hoodie", "https://images.unsplash.com/photo-1542293787938-4d36393d5a29?auto=format&fit=crop&w=1200&q=80"},
	{"bag", "https://images.unsplash.com/photo-1512499617640-c2f999098c01?auto=format&fit=crop&w=1200&q=80"},
	{"headphones", "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&w=1200&q=80"},
	{"camera", "https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?auto=format&fit=crop&w=1200&q=80"},
}

// ProductImage picks a display image for a product: its explicit image URL
// if set, else a curated keyword match, else a deterministic pick from the
// fallback list.
func ProductImage(p *models.Product) string {
	if p.ImageURL != nil && *p.ImageURL != "" {
		return *p.ImageURL
	}

	text := strings.ToLower(p.Slug)
	if text == "" {
		text = strings.ToLower(p.Name)
	} else {
		text += " " + strings.ToLower(p.Name)
	}

	for _, c := range curatedByKeyword {
		if strings.Contains(text, c.keyword) {
			return c.url
		}
	}

	key := p.Slug
	if key == "" {
		key = p.Name
	}
	if key == "" {
		key = "product"
	}
	if img := fallbackImages[hashString(key)%uint32(len(fallbackImages))]; img != "" {
		return img
	}
	return defaultImage
}

// hashString is a 32-bit string hash (the classic h*31 + c construction),
// kept deliberately simple: it only spreads products across the fallback
// image list.
func hashString(s string) uint32 {
	var h int32
	for _, c := range s {
		h = (h << 5) - h + int32(c)
	}
	if h < 0 {
		h = -h
	}
	return uint32(h)
}
