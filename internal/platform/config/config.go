package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Config agrupa toda la configuración por env del servicio.
type Config struct {
	// Requeridos: sin estos dos no hay backend remoto y el arranque es fatal.
	SupabaseURL     string
	SupabaseAnonKey string

	// Opcionales
	Port          string // default 8080
	DatabaseDSN   string // si está vacío, repos in-memory (modo dev)
	AvatarsBucket string // default "avatars"
	MaxUploadMB   int64  // default 5
}

var ErrMissingSupabase = errors.New("SUPABASE_URL and SUPABASE_ANON_KEY are required")

// Load lee la configuración desde env. La ausencia de las variables de
// Supabase es condición fatal de arranque (el caller hace log.Fatal).
func Load() (Config, error) {
	cfg := Config{
		SupabaseURL:     strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		SupabaseAnonKey: strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),
		Port:            strings.TrimSpace(os.Getenv("PORT")),
		DatabaseDSN:     strings.TrimSpace(os.Getenv("DB_DSN")),
		AvatarsBucket:   strings.TrimSpace(os.Getenv("AVATARS_BUCKET")),
		MaxUploadMB:     5,
	}

	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		return Config{}, ErrMissingSupabase
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.AvatarsBucket == "" {
		cfg.AvatarsBucket = "avatars"
	}

	if v := strings.TrimSpace(os.Getenv("MAX_UPLOAD_MB")); v != "" {
		var n int64
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_UPLOAD_MB must be a positive integer, got %q", v)
		}
		cfg.MaxUploadMB = n
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
