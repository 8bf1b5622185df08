package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               int    `envconfig:"PORT" default:"8080"`
	DatabaseURL        string `envconfig:"DATABASE_URL" default:""`
	JWTSecret          string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	EditorPasswordHash string `envconfig:"EDITOR_PASSWORD_HASH" default:""`
	AllowedOrigins     string `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
