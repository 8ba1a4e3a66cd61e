// internal/config/config.go
//
// Environment-driven configuration for the BananaGame server.
// Every knob has a development default; production deployments override
// via environment variables (a .env file is loaded at startup).

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Addr            string        // HTTP listen address, e.g. ":8080"
	DBPath          string        // SQLite database file path
	JWTSecret       string        // JWT signing secret
	JWTExpiry       time.Duration // lifetime of issued tokens
	CookieName      string        // auth cookie name
	ClientOrigin    string        // allowed CORS origin for the browser client
	QuestionAPIURL  string        // external question provider endpoint
	QuestionTimeout time.Duration // bound on a single question fetch
	LogLevel        string        // zerolog level name
}

// Load reads configuration from the environment with development defaults.
func Load() *Config {
	return &Config{
		Addr:            ":" + getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "./data/bananagame.db"),
		JWTSecret:       getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiry:       time.Duration(getEnvInt("JWT_EXPIRES_HOURS", 24)) * time.Hour,
		CookieName:      getEnv("COOKIE_NAME", "banana_token"),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		QuestionAPIURL:  getEnv("QUESTION_API_URL", ""),
		QuestionTimeout: time.Duration(getEnvInt("QUESTION_TIMEOUT_MS", 5000)) * time.Millisecond,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt parses k as an integer, falling back to def on absence or junk.
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
