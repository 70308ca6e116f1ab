package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a default admin user plus a small demo catalog so the
// storefront has something to show on first boot. The admin will be
// prompted to set up 2FA on first login (totp_enabled = false).
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled — they must set it up
	// on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@nightmarket.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if err := seedCatalog(db); err != nil {
		return err
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@nightmarket.local",
		"password", "admin",
	)

	return nil
}

// seedCatalog inserts a handful of published products and events for the
// demo storefront.
func seedCatalog(db *sql.DB) error {
	products := []struct {
		name, slug, summary string
		priceCents          int64
	}{
		{"Night Market Tee", "night-market-tee", "Heavyweight cotton tee with the lantern logo.", 2800},
		{"Pour-Over Kit", "pour-over-kit", "Ceramic dripper, filters, and a bag of house beans.", 6400},
		{"Canvas Tote Bag", "canvas-tote-bag", "Oversized tote for hauls from the stalls.", 1850},
		{"Studio Headphones", "studio-headphones", "Closed-back cans tuned for late-night listening.", 12900},
	}
	for _, p := range products {
		_, err := db.Exec(`
			INSERT INTO products (name, slug, price_cents, status, summary)
			VALUES ($1, $2, $3, 'published', $4)
		`, p.name, p.slug, p.priceCents, p.summary)
		if err != nil {
			return fmt.Errorf("seed insert product %q: %w", p.slug, err)
		}
	}

	events := []struct {
		title, description string
		startsAt           string
	}{
		{"Winter Launch Party", "First look at the winter drop, with tastings from the coffee bar.", "2026-12-05T18:00:00Z"},
		{"Vendor Pop-Up Weekend", "Guest makers take over the stalls for two days.", "2027-01-16T11:00:00Z"},
	}
	for _, e := range events {
		_, err := db.Exec(`
			INSERT INTO events (title, description, status, starts_at)
			VALUES ($1, $2, 'published', $3::timestamptz)
		`, e.title, e.description, e.startsAt)
		if err != nil {
			return fmt.Errorf("seed insert event %q: %w", e.title, err)
		}
	}

	return nil
}
