// Package config resolves runtime configuration from the environment.
package config

import (
	"os"
	"strings"

	"backend/internal/credentials"

	"github.com/go-faster/errors"
	"go.uber.org/zap/zapcore"
)

const (
	defaultPort     = "8080"
	defaultLogLevel = "info"
)

// Config aggregates runtime configuration resolved from the environment.
type Config struct {
	// ServiceAccountKey holds the service account key as JSON or base64
	// encoded JSON. When empty, CredentialsFile is read instead.
	ServiceAccountKey string
	ProjectID         string

	// StorageBucket enables Cloud Storage when set.
	StorageBucket   string
	CredentialsFile string
	Port            string

	// AllowedOrigins lists the CORS origins of the health endpoints.
	AllowedOrigins []string
	LogLevel       zapcore.Level
}

// Load reads the configuration from environment variables. Callers load any
// .env file beforehand.
func Load() (Config, error) {
	cfg := Config{
		ServiceAccountKey: strings.TrimSpace(os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY")),
		ProjectID:         strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")),
		StorageBucket:     strings.TrimSpace(os.Getenv("FIREBASE_STORAGE_BUCKET")),
		CredentialsFile:   envOr("FIREBASE_SERVICE_ACCOUNT_FILE", credentials.DefaultFile),
		Port:              envOr("PORT", defaultPort),
		AllowedOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	level, err := zapcore.ParseLevel(envOr("LOG_LEVEL", defaultLogLevel))
	if err != nil {
		return Config{}, errors.Wrap(err, "LOG_LEVEL")
	}
	cfg.LogLevel = level

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
