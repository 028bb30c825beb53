package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "PUBLIC_URL", "SESSION_TTL", "SESSION_DRIVER", "CODE_ATTEMPTS", "ENABLE_SIGNUP"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.Mode != ModeOffline {
		t.Fatalf("mode = %q", cfg.Mode)
	}
	if cfg.HTTPAddr != ":3000" {
		t.Fatalf("addr = %q", cfg.HTTPAddr)
	}
	if cfg.PublicURL != "http://localhost:3000" {
		t.Fatalf("public url = %q", cfg.PublicURL)
	}
	if cfg.SessionTTL != 24*time.Hour || cfg.SessionDriver != "sql" {
		t.Fatalf("session defaults: %v %q", cfg.SessionTTL, cfg.SessionDriver)
	}
	if cfg.CodeAttempts != 5 || !cfg.EnableSignup {
		t.Fatalf("code attempts %d signup %v", cfg.CodeAttempts, cfg.EnableSignup)
	}
	if cfg.SecureCookies() {
		t.Fatalf("offline mode must not force secure cookies")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("PUBLIC_URL", "https://quiz.example.org/")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("CODE_ATTEMPTS", "not-a-number")
	t.Setenv("ENABLE_SIGNUP", "no")
	t.Setenv("CORS_ORIGINS_ONLINE", " https://a.example , ,https://b.example")

	cfg := FromEnv()
	if !cfg.SecureCookies() {
		t.Fatalf("online mode should use secure cookies")
	}
	if cfg.PublicURL != "https://quiz.example.org" {
		t.Fatalf("public url = %q", cfg.PublicURL)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Fatalf("ttl = %v", cfg.SessionTTL)
	}
	if cfg.CodeAttempts != 5 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.CodeAttempts)
	}
	if cfg.EnableSignup {
		t.Fatalf("signup should be disabled")
	}
	if len(cfg.CORSOriginsOnline) != 2 || cfg.CORSOriginsOnline[1] != "https://b.example" {
		t.Fatalf("origins = %#v", cfg.CORSOriginsOnline)
	}
}
