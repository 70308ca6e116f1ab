// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"nightmarket/internal/github"
	"nightmarket/internal/themes"
)

// API groups the JSON endpoints used by automation and scripted clients.
type API struct {
	themeService *themes.Service
}

// NewAPI creates a new API handler group.
func NewAPI(themeService *themes.Service) *API {
	return &API{themeService: themeService}
}

type themeRequestPayload struct {
	EventID string `json:"eventId"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

type issueRequestPayload struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

// RequestTheme handles POST /api/themes: it creates a theme row for the
// event and opens the tracking issue, returning both.
func (a *API) RequestTheme(w http.ResponseWriter, r *http.Request) {
	var payload themeRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	eventID, err := uuid.Parse(payload.EventID)
	if err != nil && payload.EventID != "" {
		writeJSONError(w, http.StatusBadRequest, "eventId must be a valid UUID")
		return
	}

	theme, issue, err := a.themeService.RequestTheme(r.Context(), eventID, payload.Title, payload.Notes)
	if err != nil {
		switch {
		case errors.Is(err, themes.ErrMissingFields):
			writeJSONError(w, http.StatusBadRequest, "eventId and title are required")
		case errors.Is(err, themes.ErrEventNotFound):
			writeJSONError(w, http.StatusNotFound, "event not found")
		case errors.Is(err, github.ErrNotConfigured):
			// Surface the setup guidance; the row is already marked failed.
			writeJSONError(w, http.StatusInternalServerError, github.ErrNotConfigured.Error())
		default:
			slog.Error("api theme request failed", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "theme request failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"theme": theme,
		"issue": issue,
	})
}

// CreateIssue handles POST /api/github/issue: it opens an issue in the
// configured repository without touching the theme table.
func (a *API) CreateIssue(w http.ResponseWriter, r *http.Request) {
	var payload issueRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	issue, err := a.themeService.CreateIssue(r.Context(), payload.Title, payload.Body, payload.Labels)
	if err != nil {
		if errors.Is(err, themes.ErrTitleRequired) {
			writeJSONError(w, http.StatusBadRequest, "title is required")
			return
		}
		if errors.Is(err, github.ErrNotConfigured) {
			writeJSONError(w, http.StatusInternalServerError, github.ErrNotConfigured.Error())
			return
		}
		slog.Error("api issue creation failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "issue creation failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"issue": issue})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("write json response failed", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
