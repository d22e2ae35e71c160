package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
	Auth  AuthConfig
	Log   LogConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type StoreConfig struct {
	// Path of the flat-file document database.
	Path string
}

type AuthConfig struct {
	// AdminUser and AdminPasswordHash are the single built-in operator
	// account. The hash is a bcrypt digest of the password; when unset
	// the development default ("admin") is hashed at startup.
	AdminUser         string
	AdminPasswordHash string
	SessionSecret     string
	SessionTTL        time.Duration
	Issuer            string
}

type LogConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "hospital-records"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "0.0.0"),
		},
		Store: StoreConfig{
			Path: getEnv("HOSPITAL_DB_FILE", "hospital_database.json"),
		},
		Auth: AuthConfig{
			AdminUser:         getEnv("HOSPITAL_ADMIN_USER", "admin"),
			AdminPasswordHash: getEnv("HOSPITAL_ADMIN_HASH", ""),
			SessionSecret:     getEnv("SESSION_SECRET", "hospital-records-dev-secret"),
			SessionTTL:        getEnvDuration("SESSION_TTL", 8*time.Hour),
			Issuer:            getEnv("SESSION_ISSUER", "hospital-records"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "console"),
			OutputPath: getEnv("LOG_OUTPUT", "stderr"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	var errs []string

	if strings.TrimSpace(cfg.Store.Path) == "" {
		errs = append(errs, "HOSPITAL_DB_FILE must not be empty")
	}

	if cfg.App.Environment == "production" {
		if cfg.Auth.SessionSecret == "hospital-records-dev-secret" {
			errs = append(errs, "SESSION_SECRET must be set in production")
		}
		if cfg.Auth.AdminPasswordHash == "" {
			errs = append(errs, "HOSPITAL_ADMIN_HASH must be set in production")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
