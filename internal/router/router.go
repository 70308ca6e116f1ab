// Package router sets up all HTTP routes and middleware chains for the
// nightmarket server. Routes are organized into public, admin and JSON API
// groups with their own middleware stacks.
package router

import (
	"github.com/go-chi/chi/v5"

	"nightmarket/internal/handlers"
	"nightmarket/internal/middleware"
	"nightmarket/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, loginLimiter *middleware.RateLimiter, secureCookies bool, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", public.Health)

	// Admin routes — CSRF-protected HTML interface.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCSRF(secureCookies))

		// Auth pages — accessible without a session. Login submissions
		// are rate limited per client IP.
		r.Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.With(loginLimiter.Middleware).Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated + 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			// Dashboard
			r.Get("/", admin.Dashboard)
			r.Get("/dashboard", admin.Dashboard)

			// Products — deletion is admin-only.
			r.Route("/products", func(r chi.Router) {
				r.Get("/", admin.ProductsList)
				r.Get("/new", admin.ProductNew)
				r.Post("/", admin.ProductCreate)
				r.Get("/{id}/edit", admin.ProductEdit)
				r.Post("/{id}", admin.ProductUpdate)
				r.Post("/{id}/status", admin.ProductStatus)
				r.With(middleware.RequireAdmin).Post("/{id}/delete", admin.ProductDelete)
			})

			// Events — deletion is admin-only.
			r.Route("/events", func(r chi.Router) {
				r.Get("/", admin.EventsList)
				r.Get("/new", admin.EventNew)
				r.Post("/", admin.EventCreate)
				r.Get("/{id}/edit", admin.EventEdit)
				r.Post("/{id}", admin.EventUpdate)
				r.Post("/{id}/status", admin.EventStatus)
				r.With(middleware.RequireAdmin).Post("/{id}/delete", admin.EventDelete)
			})

			// Themes — deletion is admin-only.
			r.Route("/themes", func(r chi.Router) {
				r.Get("/", admin.ThemesList)
				r.Get("/new", admin.ThemeNew)
				r.Post("/", admin.ThemeCreate)
				r.Post("/{id}/toggle", admin.ThemeToggle)
				r.With(middleware.RequireAdmin).Post("/{id}/delete", admin.ThemeDelete)
			})
		})
	})

	// JSON API — session-authenticated, no CSRF (same-origin scripted
	// clients send the session cookie and get JSON errors back).
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuthJSON)
		r.Post("/themes", api.RequestTheme)
		r.Post("/github/issue", api.CreateIssue)
	})

	// Public storefront.
	r.Get("/", public.Home)

	return r
}
