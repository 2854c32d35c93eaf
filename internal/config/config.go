// Package config loads application configuration from environment
// variables. Required variables are enforced by must(); missing values
// stop the process at startup rather than failing later mid-request.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	UpstreamBaseURL   string // base URL of the practice-management API
	UpstreamToken     string // bearer token for the upstream API
	UpstreamAccountID string // upstream account identifier header
	SyncIntervalMin   int    // minutes between sync passes
}

// Load reads configuration from the environment. Upstream settings are
// optional so the API server can run against an already-synced database
// without upstream credentials; the sync worker checks them itself.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		UpstreamBaseURL:   os.Getenv("UPSTREAM_BASE_URL"),
		UpstreamToken:     os.Getenv("UPSTREAM_ACCESS_TOKEN"),
		UpstreamAccountID: os.Getenv("UPSTREAM_ACCOUNT_ID"),
		SyncIntervalMin:   envInt("SYNC_INTERVAL_MIN", 30),
	}
}

// RequireUpstream exits unless the upstream API settings are present.
// The sync worker calls this at startup.
func (c Config) RequireUpstream() Config {
	if c.UpstreamBaseURL == "" {
		log.Fatal("missing required env var: UPSTREAM_BASE_URL")
	}
	if c.UpstreamToken == "" {
		log.Fatal("missing required env var: UPSTREAM_ACCESS_TOKEN")
	}
	if c.UpstreamAccountID == "" {
		log.Fatal("missing required env var: UPSTREAM_ACCOUNT_ID")
	}
	return c
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
