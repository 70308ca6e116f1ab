// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"nightmarket/internal/cache"
	"nightmarket/internal/middleware"
	"nightmarket/internal/storefront"
	"nightmarket/internal/store"
)

// Public groups the storefront-facing HTTP handlers.
type Public struct {
	productStore *store.ProductStore
	eventStore   *store.EventStore
	themeStore   *store.ThemeStore
	renderer     *storefront.Renderer
	pageCache    *cache.PageCache
}

// NewPublic creates a new Public handler group.
func NewPublic(productStore *store.ProductStore, eventStore *store.EventStore, themeStore *store.ThemeStore, renderer *storefront.Renderer, pageCache *cache.PageCache) *Public {
	return &Public{
		productStore: productStore,
		eventStore:   eventStore,
		themeStore:   themeStore,
		renderer:     renderer,
		pageCache:    pageCache,
	}
}

// Home renders the storefront with the active theme variant applied.
//
// Only the logged-out render is cached: the nav changes for signed-in
// users, so their render is always fresh and never written to the cache.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	loggedIn := middleware.SessionFromCtx(r.Context()) != nil

	if !loggedIn {
		if cached, ok := p.pageCache.Get(r.Context(), cache.StorefrontKey()); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("X-Cache", "HIT")
			w.Write(cached)
			return
		}
	}

	products, err := p.productStore.ListPublished()
	if err != nil {
		slog.Error("list published products failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	events, err := p.eventStore.ListPublished()
	if err != nil {
		slog.Error("list published events failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	active, err := p.themeStore.FindActive()
	if err != nil {
		slog.Error("find active theme failed", "error", err)
		// Render with the default look rather than failing the page.
		active = nil
	}

	page, err := p.renderer.Home(storefront.BuildPageData(products, events, active, loggedIn))
	if err != nil {
		slog.Error("storefront render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !loggedIn {
		p.pageCache.Set(r.Context(), cache.StorefrontKey(), page)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Cache", "MISS")
	w.Write(page)
}

// Health reports service liveness.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
