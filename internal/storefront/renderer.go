// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storefront

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"nightmarket/internal/models"
	"nightmarket/internal/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is everything the storefront template needs for one render.
type PageData struct {
	Variant         Variant
	Flag            string // empty when no theme is active
	Themed          bool
	Products        []models.Product
	FeaturedProduct *models.Product
	Events          []models.Event
	LoggedIn        bool
}

// Renderer produces the storefront HTML page.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded storefront templates.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		// image accepts both values (range elements) and pointers
		// (FeaturedProduct) since templates cannot auto-convert.
		"image": func(p any) string {
			switch v := p.(type) {
			case *models.Product:
				return ProductImage(v)
			case models.Product:
				return ProductImage(&v)
			}
			return defaultImage
		},
		"price": FormatPrice,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"eventTime": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("Jan 2, 2006 · 3:04 PM")
		},
	}

	tmpl, err := template.New("home.html").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse storefront templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// BuildPageData assembles the view model from published content and the
// active theme (nil when none). The theme flag is derived from the theme
// title; flags without a registered variant get the default copy.
func BuildPageData(products []models.Product, events []models.Event, active *models.Theme, loggedIn bool) PageData {
	data := PageData{
		Variant:  DefaultVariant(),
		Products: products,
		Events:   events,
		LoggedIn: loggedIn,
	}

	if active != nil {
		data.Flag = slug.Generate(active.Title)
		data.Themed = true
		data.Variant = VariantFor(data.Flag)
	}

	if len(products) > 0 {
		data.FeaturedProduct = &products[0]
	}

	return data
}

// Home renders the storefront page and returns the HTML bytes, suitable
// for caching.
func (r *Renderer) Home(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "home.html", data); err != nil {
		return nil, fmt.Errorf("render storefront: %w", err)
	}
	return buf.Bytes(), nil
}
