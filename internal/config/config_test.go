package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.DefaultWeeks != 16 {
		t.Errorf("DefaultWeeks = %d, want 16", cfg.DefaultWeeks)
	}
	if cfg.AssistantName != "Luciano" {
		t.Errorf("AssistantName = %q, want Luciano", cfg.AssistantName)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Errorf("CORSAllowedOrigins = %v, want nil", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("DEFAULT_WEEKS", "8")
	t.Setenv("USE_MEMORY_SESSIONS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://pragma.example, https://admin.example")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
	if cfg.DefaultWeeks != 8 {
		t.Errorf("DefaultWeeks = %d, want 8", cfg.DefaultWeeks)
	}
	if !cfg.UseMemorySessions {
		t.Error("UseMemorySessions should be true")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://admin.example" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}
