package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("TEXT_ORACLE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.TextOracle != "none" {
		t.Fatalf("expected oracle disabled by default, got %s", cfg.TextOracle)
	}
	if cfg.TextOracleTimeout != 15*time.Second {
		t.Fatalf("expected default oracle timeout, got %s", cfg.TextOracleTimeout)
	}
	if cfg.SentimentTimeout != 5*time.Second {
		t.Fatalf("expected default sentiment timeout, got %s", cfg.SentimentTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard CORS default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("TEXT_ORACLE", "Gemini")
	t.Setenv("TEXT_ORACLE_FALLBACK", "ollama")
	t.Setenv("TEXT_ORACLE_TIMEOUT", "30s")
	t.Setenv("GEMINI_MODEL_ID", "gemini-2.5-pro")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if cfg.TextOracle != "gemini" {
		t.Fatalf("expected lowercased oracle provider, got %s", cfg.TextOracle)
	}
	if cfg.TextOracleFallback != "ollama" {
		t.Fatalf("expected oracle fallback override, got %s", cfg.TextOracleFallback)
	}
	if cfg.TextOracleTimeout != 30*time.Second {
		t.Fatalf("expected oracle timeout override, got %s", cfg.TextOracleTimeout)
	}
	if cfg.GeminiModelID != "gemini-2.5-pro" {
		t.Fatalf("expected gemini model override, got %s", cfg.GeminiModelID)
	}
	if !cfg.RedisTLS {
		t.Fatalf("expected redis TLS enabled")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("expected trimmed CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}
