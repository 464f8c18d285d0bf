// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	AppEnv      string `mapstructure:"APP_ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	AppURL      string `mapstructure:"APP_URL"`
	Origin      string `mapstructure:"ORIGIN"`
	RedisURL    string `mapstructure:"REDIS_URL"`
	UploadDir   string `mapstructure:"UPLOAD_DIR"`
}

const devJWTSecret = "jwt_secret_change_me"

var keys = []string{"PORT", "APP_ENV", "DATABASE_URL", "JWT_SECRET", "APP_URL", "ORIGIN", "REDIS_URL", "UPLOAD_DIR"}

// Load reads configuration from the environment. A .env file, if any, is
// expected to be loaded by the caller beforehand.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "4000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=agora port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", devJWTSecret)
	v.SetDefault("APP_URL", "http://localhost:4000")
	v.SetDefault("ORIGIN", "http://localhost:3000")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("UPLOAD_DIR", "public/images")

	// AutomaticEnv only applies to keys viper already knows about.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.AppURL = strings.TrimRight(cfg.AppURL, "/")

	if cfg.IsProduction() && cfg.JWTSecret == devJWTSecret {
		return nil, errors.New("JWT_SECRET must be set in production")
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
