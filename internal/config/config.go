// Package config handles loading and validating runtime configuration for the
// TurfBook API. Configuration values (like the database URL and API port) are
// read from environment variables rather than being hardcoded, so the same
// binary can run in dev, staging, and production by swapping the environment.
package config

import (
	"os"

	// godotenv reads a .env file and loads its key=value pairs into the process
	// environment. Convenient in development; in production real env vars are
	// set by the deployment platform and no .env file exists.
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port        string // The TCP port the HTTP server will listen on (e.g., "8080")
	DatabaseURL string // PostgreSQL connection string
	JWTSecret   string // HS256 signing secret for access tokens
	Env         string // "development", "staging", or "production"
}

// Load reads configuration from environment variables and returns a populated
// Config. A .env file is loaded first if present; the error is intentionally
// ignored because a missing .env is normal outside development.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" && env == "development" {
		// Deterministic local fallback; production must set JWT_SECRET.
		secret = "local-dev-secret-key"
	}

	return &Config{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"), // Required — server will fail to start without it
		JWTSecret:   secret,
		Env:         env,
	}
}
