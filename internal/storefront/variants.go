// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storefront renders the public one-page shop: hero, product grid,
// and events list, with copy swapped per the active theme flag.
package storefront

// Variant holds the copy and labels for one storefront look. A variant is
// selected by the flag derived from the active theme's title; flags with no
// registered variant render the default storefront with no special styling.
type Variant struct {
	Flag            string
	HeroBadge       string
	HeroHeading     string
	HeroDescription string
	HeroHighlights  []string
	HeroCTALabel    string
	FeaturedLabel   string
	FeaturedTag     string
	StockBadgeLabel string
	AddToCartLabel  string
	ProductsHeading string
	EventsHeading   string
	EmptyEventsCopy string
}

// defaultVariant is the year-round storefront.
var defaultVariant = Variant{
	Flag:            "",
	HeroBadge:       "New drop",
	HeroHeading:     "Night Market Supply — a one-page storefront for merch, beans, and tech.",
	HeroDescription: "Merch, tech, coffee gear, whatever you dream up. Publish in the admin, let customers browse here, and ship a new theme with a single request.",
	HeroHighlights: []string{
		"Free shipping over $75",
		"45-day returns",
		"Live inventory sync",
	},
	HeroCTALabel:    "Shop the collection",
	FeaturedLabel:   "Featured",
	FeaturedTag:     "Ready to ship",
	StockBadgeLabel: "In stock",
	AddToCartLabel:  "Add to bag",
	ProductsHeading: "Fresh arrivals",
	EventsHeading:   "In-store happenings",
	EmptyEventsCopy: "No events scheduled. Add one from the admin area.",
}

// registry maps theme flags to their storefront variants. This is an open
// mapping: generated themes land here as they ship, and unknown flags fall
// back to the default.
var registry = map[string]Variant{
	"merry-christmas": {
		Flag:            "merry-christmas",
		HeroBadge:       "Holiday shop open",
		HeroHeading:     "Merry Market Supply — a cozy gifting storefront for the season.",
		HeroDescription: "Cheerful merch, beans, and tech wrapped up for the season. Publish in the admin, let the elves handle live inventory, and refresh the vibe with a single theme flag.",
		HeroHighlights: []string{
			"Complimentary gift wrap",
			"Extended returns through Jan 15",
			"Next-day sleigh delivery",
		},
		HeroCTALabel:    "Shop holiday picks",
		FeaturedLabel:   "Featured gift",
		FeaturedTag:     "Wrapped today",
		StockBadgeLabel: "North Pole ready",
		AddToCartLabel:  "Add to sleigh",
		ProductsHeading: "Fresh from the North Pole",
		EventsHeading:   "Holiday happenings",
		EmptyEventsCopy: "No events scheduled yet. Add a cozy gathering from the admin area.",
	},
}

// VariantFor returns the storefront variant for a theme flag, falling back
// to the default variant for empty or unknown flags.
func VariantFor(flag string) Variant {
	if v, ok := registry[flag]; ok {
		return v
	}
	return defaultVariant
}

// DefaultVariant returns the unthemed storefront copy.
func DefaultVariant() Variant {
	return defaultVariant
}

// RegisterVariant adds or replaces a variant in the registry. The flag key
// comes from the variant itself.
func RegisterVariant(v Variant) {
	registry[v.Flag] = v
}
