// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the nightmarket server.
// Handlers are grouped by concern (admin, auth, public, api) and receive
// their dependencies through the handler struct.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"nightmarket/internal/cache"
	"nightmarket/internal/models"
	"nightmarket/internal/render"
	"nightmarket/internal/slug"
	"nightmarket/internal/store"
	"nightmarket/internal/themes"
)

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer     *render.Renderer
	productStore *store.ProductStore
	eventStore   *store.EventStore
	themeStore   *store.ThemeStore
	themeService *themes.Service
	pageCache    *cache.PageCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(renderer *render.Renderer, productStore *store.ProductStore, eventStore *store.EventStore, themeStore *store.ThemeStore, themeService *themes.Service, pageCache *cache.PageCache) *Admin {
	return &Admin{
		renderer:     renderer,
		productStore: productStore,
		eventStore:   eventStore,
		themeStore:   themeStore,
		themeService: themeService,
		pageCache:    pageCache,
	}
}

// Dashboard renders the admin dashboard with catalog stats and the active
// theme.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	productCount, _ := a.productStore.Count()
	eventCount, _ := a.eventStore.Count()
	active, _ := a.themeStore.FindActive()

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"ProductCount": productCount,
			"EventCount":   eventCount,
			"ActiveTheme":  active,
		},
	})
}

// --- Products CRUD ---

// ProductsList renders the product management page.
func (a *Admin) ProductsList(w http.ResponseWriter, r *http.Request) {
	products, err := a.productStore.List()
	if err != nil {
		slog.Error("list products failed", "error", err)
	}

	a.renderer.Page(w, r, "products", &render.PageData{
		Title:   "Products",
		Section: "products",
		Data:    map[string]any{"Products": products},
	})
}

// ProductNew renders the new product form.
func (a *Admin) ProductNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "product_form", &render.PageData{
		Title:   "New Product",
		Section: "products",
		Data:    map[string]any{"Action": "/admin/products"},
	})
}

// ProductCreate handles the new product form submission. A blank slug is
// derived from the name.
func (a *Admin) ProductCreate(w http.ResponseWriter, r *http.Request) {
	p, errMsg := a.productFromForm(r)
	if errMsg != "" {
		a.renderer.Page(w, r, "product_form", &render.PageData{
			Title:   "New Product",
			Section: "products",
			Flashes: []render.Flash{{Type: "error", Message: errMsg}},
			Data:    map[string]any{"Action": "/admin/products"},
		})
		return
	}

	if _, err := a.productStore.Create(p); err != nil {
		slog.Error("create product failed", "error", err)
		a.renderer.Page(w, r, "product_form", &render.PageData{
			Title:   "New Product",
			Section: "products",
			Flashes: []render.Flash{{Type: "error", Message: "Could not save the product."}},
			Data:    map[string]any{"Action": "/admin/products"},
		})
		return
	}

	a.pageCache.InvalidateStorefront(r.Context())
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// ProductEdit renders the edit product form.
func (a *Admin) ProductEdit(w http.ResponseWriter, r *http.Request) {
	product := a.loadProduct(w, r)
	if product == nil {
		return
	}

	a.renderer.Page(w, r, "product_form", &render.PageData{
		Title:   "Edit Product",
		Section: "products",
		Data: map[string]any{
			"Product": product,
			"Action":  "/admin/products/" + product.ID.String(),
		},
	})
}

// ProductUpdate handles the edit product form submission.
func (a *Admin) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	product := a.loadProduct(w, r)
	if product == nil {
		return
	}

	updated, errMsg := a.productFromForm(r)
	if errMsg != "" {
		a.renderer.Page(w, r, "product_form", &render.PageData{
			Title:   "Edit Product",
			Section: "products",
			Flashes: []render.Flash{{Type: "error", Message: errMsg}},
			Data: map[string]any{
				"Product": product,
				"Action":  "/admin/products/" + product.ID.String(),
			},
		})
		return
	}

	updated.ID = product.ID
	if err := a.productStore.Update(updated); err != nil {
		slog.Error("update product failed", "error", err, "product_id", product.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateStorefront(r.Context())
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// ProductStatus toggles a product between draft and published.
func (a *Admin) ProductStatus(w http.ResponseWriter, r *http.Request) {
	product := a.loadProduct(w, r)
	if product == nil {
		return
	}

	status := models.ProductStatus(r.FormValue("status"))
	if status != models.ProductStatusDraft && status != models.ProductStatusPublished {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	if err := a.productStore.SetStatus(product.ID, status); err != nil {
		slog.Error("set product status failed", "error", err, "product_id", product.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateStorefront(r.Context())
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// ProductDelete handles product deletion.
func (a *Admin) ProductDelete(w http.ResponseWriter, r *http.Request) {
	product := a.loadProduct(w, r)
	if product == nil {
		return
	}

	if err := a.productStore.Delete(product.ID); err != nil {
		slog.Error("delete product failed", "error", err, "product_id", product.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateStorefront(r.Context())
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// --- Events CRUD ---

// EventsList renders the event management page.
func (a *Admin) EventsList(w http.ResponseWriter, r *http.Request) {
	events, err := a.eventStore.List()
	if err != nil {
		slog.Error("list events failed", "error", err)
	}

	a.renderer.Page(w, r, "events", &render.PageData{
		Title:   "Events",
		Section: "events",
		Data:    map[string]any{"Events": events},
	})
}

// EventNew renders the new event form.
func (a *Admin) EventNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "event_form", &render.PageData{
		Title:   "New Event",
		Section: "events",
		Data:    map[string]any{"Action": "/admin/events"},
	})
}

// EventCreate handles the new event form submission.
func (a *Admin) EventCreate(w http.ResponseWriter, r *http.Request) {
	e, errMsg := eventFromForm(r)
	if errMsg != "" {
		a.renderer.Page(w, r, "event_form", &render.PageData{
			Title:   "New Event",
			Section: "events",
			Flashes: []render.Flash{{Type: "error", Message: errMsg}},
			Data:    map[string]any{"Action": "/admin/events"},
		})
		return
	}

	if _, err := a.eventStore.Create(e); err != nil {
		slog.Error("create event failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateStorefront(r.Context())
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

// EventEdit renders the edit event form.
func (a *Admin) EventEdit(w http.ResponseWriter, r *http.Request) {
	event := a.loadEvent(w, r)
	if event == nil {
		return
	}

	a.renderer.Page(w, r, "event_form", &render.PageData{
		Title:   "Edit Event",
		Section: "events",
		Data: map[string]any{
			"Event":  event,
			"Action": "/admin/events/" + event.ID.String(),
		},
	})
}

// EventUpdate handles the edit event form submission.
func (a *Admin) EventUpdate(w http.ResponseWriter, r *http.Request) {
	event := a.loadEvent(w, r)
	if event == nil {
		return
	}

	updated, errMsg := eventFromForm(r)
	if errMsg != "" {
		a.renderer.Page(w, r, "event_form", &render.PageData{
			Title:   "Edit Event",
			Section: "events",
			Flashes: []render.Flash{{Type: "error", Message: errMsg}},
			Data: map[string]any{
				"Event":  event,
				"Action": "/admin/events/" + event.ID.String(),
			},
		})
		return
	}

	updated.ID = event.ID
	if err := a.eventStore.Update(updated); err != nil {
		slog.Error("update event failed", "error", err, "event_id", event.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateStorefront(r.Context())
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

// EventStatus toggles an event between draft and published.
func (a *Admin) EventStatus(w http.ResponseWriter, r *http.Request) {
	event := a.loadEvent(w, r)
	if event == nil {
		return
	}

	status := models.EventStatus(r.FormValue("status"))
	if status != models.EventStatusDraft && status != models.EventStatusPublished {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	event.Status = status
	if err := a.eventStore.Update(event); err != nil {
		slog.Error("set event status failed", "error", err, "event_id", event.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateStorefront(r.Context())
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

// EventDelete handles event deletion. Themes referencing the event go with
// it (ON DELETE CASCADE).
func (a *Admin) EventDelete(w http.ResponseWriter, r *http.Request) {
	event := a.loadEvent(w, r)
	if event == nil {
		return
	}

	if err := a.eventStore.Delete(event.ID); err != nil {
		slog.Error("delete event failed", "error", err, "event_id", event.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateStorefront(r.Context())
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

// --- Themes ---

// ThemesList renders the theme management page.
func (a *Admin) ThemesList(w http.ResponseWriter, r *http.Request) {
	list, err := a.themeStore.List()
	if err != nil {
		slog.Error("list themes failed", "error", err)
	}

	a.renderer.Page(w, r, "themes", &render.PageData{
		Title:   "Themes",
		Section: "themes",
		Data:    map[string]any{"Themes": list},
	})
}

// ThemeNew renders the theme request form. An event can be preselected via
// the event_id query parameter.
func (a *Admin) ThemeNew(w http.ResponseWriter, r *http.Request) {
	events, err := a.eventStore.List()
	if err != nil {
		slog.Error("list events for theme form failed", "error", err)
	}

	a.renderer.Page(w, r, "theme_form", &render.PageData{
		Title:   "Request Theme",
		Section: "themes",
		Data: map[string]any{
			"Events":          events,
			"SelectedEventID": r.URL.Query().Get("event_id"),
		},
	})
}

// ThemeCreate handles the theme request form submission: it creates the
// theme row and opens the tracking issue through the lifecycle service.
func (a *Admin) ThemeCreate(w http.ResponseWriter, r *http.Request) {
	eventID, _ := uuid.Parse(r.FormValue("event_id"))
	title := r.FormValue("title")
	notes := r.FormValue("notes")

	_, _, err := a.themeService.RequestTheme(r.Context(), eventID, title, notes)
	if err != nil {
		msg := "Theme request failed. The theme row is kept for inspection."
		switch {
		case errors.Is(err, themes.ErrMissingFields):
			msg = "Pick an event and give the theme a title."
		case errors.Is(err, themes.ErrEventNotFound):
			msg = "The selected event no longer exists."
		}

		events, _ := a.eventStore.List()
		a.renderer.Page(w, r, "theme_form", &render.PageData{
			Title:   "Request Theme",
			Section: "themes",
			Flashes: []render.Flash{{Type: "error", Message: msg}},
			Data: map[string]any{
				"Events":          events,
				"SelectedEventID": r.FormValue("event_id"),
			},
		})
		return
	}

	http.Redirect(w, r, "/admin/themes", http.StatusSeeOther)
}

// ThemeToggle enables or disables a theme for storefront display.
func (a *Admin) ThemeToggle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	enabled := r.FormValue("enabled") == "true"
	if _, err := a.themeService.SetEnabled(r.Context(), id, enabled); err != nil {
		if errors.Is(err, themes.ErrThemeNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("toggle theme failed", "error", err, "theme_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateStorefront(r.Context())
	http.Redirect(w, r, "/admin/themes", http.StatusSeeOther)
}

// ThemeDelete handles theme deletion.
func (a *Admin) ThemeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := a.themeStore.Delete(id); err != nil {
		slog.Error("delete theme failed", "error", err, "theme_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateStorefront(r.Context())
	http.Redirect(w, r, "/admin/themes", http.StatusSeeOther)
}

// --- Form parsing helpers ---

// loadProduct resolves the {id} URL parameter to a product, writing the
// error response itself when the product cannot be served.
func (a *Admin) loadProduct(w http.ResponseWriter, r *http.Request) *models.Product {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return nil
	}

	product, err := a.productStore.FindByID(id)
	if err != nil {
		slog.Error("find product failed", "error", err, "product_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	if product == nil {
		http.NotFound(w, r)
		return nil
	}
	return product
}

// loadEvent resolves the {id} URL parameter to an event, writing the error
// response itself when the event cannot be served.
func (a *Admin) loadEvent(w http.ResponseWriter, r *http.Request) *models.Event {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return nil
	}

	event, err := a.eventStore.FindByID(id)
	if err != nil {
		slog.Error("find event failed", "error", err, "event_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	if event == nil {
		http.NotFound(w, r)
		return nil
	}
	return event
}

// productFromForm builds a product from form values. Returns a non-empty
// message on validation failure.
func (a *Admin) productFromForm(r *http.Request) (*models.Product, string) {
	name := strings.TrimSpace(r.FormValue("name"))
	slugValue := strings.TrimSpace(r.FormValue("slug"))
	if slugValue == "" {
		slugValue = slug.Generate(name)
	} else {
		slugValue = slug.Generate(slugValue)
	}

	priceCents, err := strconv.ParseInt(r.FormValue("price_cents"), 10, 64)
	if err != nil {
		return nil, "Price must be a whole number of cents."
	}

	if msg := validateProduct(name, slugValue, priceCents); msg != "" {
		return nil, msg
	}

	status := models.ProductStatus(r.FormValue("status"))
	if status != models.ProductStatusPublished {
		status = models.ProductStatusDraft
	}

	return &models.Product{
		Name:        name,
		Slug:        slugValue,
		PriceCents:  priceCents,
		Status:      status,
		Summary:     optionalField(r.FormValue("summary")),
		Description: optionalField(r.FormValue("description")),
		ImageURL:    optionalField(r.FormValue("image_url")),
	}, ""
}

// eventFromForm builds an event from form values. Returns a non-empty
// message on validation failure.
func eventFromForm(r *http.Request) (*models.Event, string) {
	title := strings.TrimSpace(r.FormValue("title"))
	if msg := validateEvent(title); msg != "" {
		return nil, msg
	}

	startsAt, ok := parseFormTime(r.FormValue("starts_at"))
	if !ok {
		return nil, "Start time is not a valid date."
	}
	endsAt, ok := parseFormTime(r.FormValue("ends_at"))
	if !ok {
		return nil, "End time is not a valid date."
	}
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return nil, "End time must come after the start time."
	}

	status := models.EventStatus(r.FormValue("status"))
	if status != models.EventStatusPublished {
		status = models.EventStatusDraft
	}

	return &models.Event{
		Title:       title,
		Description: optionalField(r.FormValue("description")),
		Status:      status,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	}, ""
}

// parseFormTime parses a datetime-local input value. Empty input is valid
// and yields nil.
func parseFormTime(value string) (*time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// optionalField trims a form value and converts the empty result to nil.
func optionalField(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
