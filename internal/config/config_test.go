package config_test

import (
	"testing"

	"backend/internal/config"
	"backend/internal/credentials"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"FIREBASE_SERVICE_ACCOUNT_KEY",
		"FIREBASE_PROJECT_ID",
		"FIREBASE_STORAGE_BUCKET",
		"FIREBASE_SERVICE_ACCOUNT_FILE",
		"PORT",
		"CORS_ALLOWED_ORIGINS",
		"LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.ServiceAccountKey)
	assert.Empty(t, cfg.ProjectID)
	assert.Empty(t, cfg.StorageBucket)
	assert.Equal(t, credentials.DefaultFile, cfg.CredentialsFile)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_KEY", " {\"project_id\":\"p\"}\n")
	t.Setenv("FIREBASE_PROJECT_ID", "demo-project")
	t.Setenv("FIREBASE_STORAGE_BUCKET", "demo-project.appspot.com")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_FILE", "/etc/firebase/key.json")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://example.com, http://localhost:3000,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, `{"project_id":"p"}`, cfg.ServiceAccountKey)
	assert.Equal(t, "demo-project", cfg.ProjectID)
	assert.Equal(t, "demo-project.appspot.com", cfg.StorageBucket)
	assert.Equal(t, "/etc/firebase/key.json", cfg.CredentialsFile)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://example.com", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")

	_, err := config.Load()
	assert.ErrorContains(t, err, "LOG_LEVEL")
}
