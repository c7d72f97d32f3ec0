package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EditPolicy decides who may edit an existing event. The historical app never
// settled on one answer, so it is configuration here.
type EditPolicy string

const (
	// EditOwnerOrAdmin allows the owner of the record and any ADMIN.
	EditOwnerOrAdmin EditPolicy = "owner-or-admin"
	// EditAnyAuthenticated allows any authenticated USER or ADMIN.
	EditAnyAuthenticated EditPolicy = "any-authenticated"
)

type Config struct {
	DatabaseURL string
	APIAddr     string
	WebAddr     string

	// APIBaseURL is the single base URL the client tier points at.
	APIBaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	// LockPassword enables the client-side lock screen when non-empty.
	LockPassword string

	EditPolicy EditPolicy
	Locale     string
	UploadsDir string

	// Discord announcement of new events; disabled unless both are set.
	DiscordToken     string
	DiscordChannelID string
}

// Load carga la configuración desde las variables de entorno y la valida.
func Load() (*Config, error) {
	// .env es opcional cuando las variables vienen del entorno (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		APIAddr:          os.Getenv("API_ADDR"),
		WebAddr:          os.Getenv("WEB_ADDR"),
		APIBaseURL:       os.Getenv("API_BASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		LockPassword:     os.Getenv("LOCK_PASSWORD"),
		EditPolicy:       EditPolicy(os.Getenv("EDIT_POLICY")),
		Locale:           os.Getenv("LOCALE"),
		UploadsDir:       os.Getenv("UPLOADS_DIR"),
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
	}

	ttl := os.Getenv("TOKEN_TTL")
	if ttl == "" {
		cfg.TokenTTL = 24 * time.Hour
	} else {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("config: TOKEN_TTL inválido (%q): %w", ttl, err)
		}
		cfg.TokenTTL = d
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate aplica los defaults y las reglas sobre la configuración cargada.
func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Valor por defecto útil en local cuando DATABASE_URL no está definida.
		c.DatabaseURL = "postgres://localhost:5432/calendario?sslmode=disable"
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL inválida (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL inválida (%q): falta scheme o host", c.DatabaseURL)
	}

	if c.APIAddr == "" {
		c.APIAddr = ":3000"
	}
	if c.WebAddr == "" {
		c.WebAddr = ":8080"
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = "http://localhost:3000"
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")

	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("config: JWT_SECRET es requerido y no puede estar vacío")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL debe ser positivo")
	}

	switch c.EditPolicy {
	case "":
		c.EditPolicy = EditOwnerOrAdmin
	case EditOwnerOrAdmin, EditAnyAuthenticated:
	default:
		return fmt.Errorf("config: EDIT_POLICY desconocida (%q)", c.EditPolicy)
	}

	if c.Locale == "" {
		c.Locale = "es"
	}
	if c.UploadsDir == "" {
		c.UploadsDir = "uploads"
	}

	return nil
}
