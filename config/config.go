// Package config loads service configuration from the environment.
// A .env file is honored in development; production supplies real
// environment variables.
package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string `env:"PORT" envDefault:"5300"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`

	// Shared secret the API gateway authenticates itself with.
	ServiceToken string `env:"COMPETITION_SERVICE_TOKEN,required"`

	// Platform service the player-profile sync worker pulls from.
	PlatformServiceURL  string `env:"PLATFORM_SERVICE_URL"`
	PlatformServicePath string `env:"PLATFORM_SERVICE_PROFILES_PATH" envDefault:"/api/v1/public/profiles"`

	// Object storage for tournament photos (R2 / S3-compatible).
	StorageAccountID    string `env:"CLOUDFLARE_ACCOUNT_ID"`
	StorageAccessKey    string `env:"R2_ACCESS_KEY_ID"`
	StorageAccessSecret string `env:"R2_ACCESS_KEY_SECRET"`
	StorageBucket       string `env:"R2_BUCKET_NAME"`
	CDNBaseURL          string `env:"CDN_BASE_URL"`
}

// Load reads .env (when present) and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// StorageConfigured reports whether object storage credentials are
// present; photo upload is disabled without them.
func (c *Config) StorageConfigured() bool {
	return c.StorageAccountID != "" && c.StorageAccessKey != "" && c.StorageAccessSecret != "" && c.StorageBucket != ""
}
