// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache + session store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// GitHub issue tracker used to hand theme requests off to the
	// generation job. May be incomplete: issue creation fails with a
	// descriptive error at call time instead of blocking startup.
	GitHub GitHub
}

// GitHub holds the resolved issue-tracker credentials and target repository.
type GitHub struct {
	Token string
	Owner string
	Repo  string
}

// Complete returns true when all values needed to create issues are present.
func (g GitHub) Complete() bool {
	return g.Token != "" && g.Owner != "" && g.Repo != ""
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "nightmarket"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "nightmarket"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		GitHub: loadGitHub(),
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// loadGitHub resolves the issue-tracker settings. The token is read from
// three variable names in priority order, matching the names different
// deploy targets historically used. Owner and repo are accepted either as
// two separate values or as a single "owner/repo" slug in either variable.
func loadGitHub() GitHub {
	token := firstEnv("GITHUB_TOKEN", "GITHUB_PAT", "GITHUB_PERSONAL_ACCESS_TOKEN")

	rawOwner := os.Getenv("GITHUB_REPO_OWNER")
	rawName := os.Getenv("GITHUB_REPO_NAME")

	owner, repo := rawOwner, rawName
	if o, r, ok := splitRepoSlug(rawName); ok {
		owner, repo = o, r
	} else if o, r, ok := splitRepoSlug(rawOwner); ok {
		owner, repo = o, r
	}

	return GitHub{Token: token, Owner: owner, Repo: repo}
}

// splitRepoSlug splits a combined "owner/repo" value into its parts.
func splitRepoSlug(s string) (owner, repo string, ok bool) {
	if !strings.Contains(s, "/") {
		return "", "", false
	}
	parts := strings.SplitN(s, "/", 2)
	return parts[0], parts[1], true
}

// firstEnv returns the first non-empty value among the named variables.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
