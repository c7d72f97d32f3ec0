package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/calendario_test?sslmode=disable")
	t.Setenv("JWT_SECRET", "clave-de-prueba")
	t.Setenv("API_ADDR", "")
	t.Setenv("WEB_ADDR", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("EDIT_POLICY", "")
	t.Setenv("LOCALE", "")
	t.Setenv("UPLOADS_DIR", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIAddr != ":3000" || cfg.WebAddr != ":8080" {
		t.Errorf("addrs = %q / %q", cfg.APIAddr, cfg.WebAddr)
	}
	if cfg.APIBaseURL != "http://localhost:3000" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
	if cfg.EditPolicy != EditOwnerOrAdmin {
		t.Errorf("EditPolicy = %q", cfg.EditPolicy)
	}
	if cfg.Locale != "es" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
}

func TestLoadSinJWTSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load aceptó una configuración sin JWT_SECRET")
	}
}

func TestLoadTTLInvalido(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TOKEN_TTL", "un rato")

	if _, err := Load(); err == nil {
		t.Fatal("Load aceptó un TOKEN_TTL no parseable")
	}
}

func TestLoadPoliticaInvalida(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("EDIT_POLICY", "cualquiera")

	if _, err := Load(); err == nil {
		t.Fatal("Load aceptó una EDIT_POLICY desconocida")
	}
}

func TestLoadDatabaseURLInvalida(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "://nada")

	if _, err := Load(); err == nil {
		t.Fatal("Load aceptó una DATABASE_URL rota")
	}
}
