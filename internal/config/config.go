package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the API reads from the environment. It is parsed
// once in main and handed to constructors explicitly; nothing else in the
// codebase reads env vars.
type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	DatabaseURL string        `env:"DATABASE_URL,required"`
	JWTSecret   string        `env:"JWT_SECRET,required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	SupabaseURL        string `env:"SUPABASE_URL"`
	SupabaseServiceKey string `env:"SUPABASE_SERVICE_KEY"`
	SupabaseBucket     string `env:"SUPABASE_BUCKET" envDefault:"post-images"`
	MaxImageBytes      int64  `env:"MAX_IMAGE_BYTES" envDefault:"5242880"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
