package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "DB_PATH", "JWT_SECRET", "JWT_EXPIRES_HOURS",
		"COOKIE_NAME", "CLIENT_ORIGIN", "QUESTION_API_URL",
		"QUESTION_TIMEOUT_MS", "LOG_LEVEL",
	} {
		os.Unsetenv(k)
	}
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DBPath == "" || cfg.JWTSecret == "" || cfg.CookieName == "" {
		t.Errorf("unexpected empty defaults: %+v", cfg)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v", cfg.JWTExpiry)
	}
	if cfg.QuestionTimeout != 5*time.Second {
		t.Errorf("QuestionTimeout = %v", cfg.QuestionTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_EXPIRES_HOURS", "1")
	t.Setenv("QUESTION_TIMEOUT_MS", "250")
	t.Setenv("QUESTION_API_URL", "http://localhost:1/q")

	cfg := Load()
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.JWTExpiry != time.Hour {
		t.Errorf("JWTExpiry = %v", cfg.JWTExpiry)
	}
	if cfg.QuestionTimeout != 250*time.Millisecond {
		t.Errorf("QuestionTimeout = %v", cfg.QuestionTimeout)
	}
	if cfg.QuestionAPIURL != "http://localhost:1/q" {
		t.Errorf("QuestionAPIURL = %q", cfg.QuestionAPIURL)
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRES_HOURS", "not-a-number")
	if cfg := Load(); cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want default", cfg.JWTExpiry)
	}
}
