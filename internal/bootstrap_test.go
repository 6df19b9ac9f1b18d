package internal

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"backend/internal/config"
	"backend/internal/credentials"
	"backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	t.Setenv("FIRESTORE_EMULATOR_HOST", "localhost:8080")

	return config.Config{
		CredentialsFile: filepath.Join(t.TempDir(), "firebase-service-account.json"),
		Port:            "0",
	}
}

func writeKey(t *testing.T, path, projectID string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, testutil.ServiceAccountJSON(t, projectID), 0o600))
}

func TestFirebase_EnvJSON(t *testing.T) {
	cfg := testConfig(t)
	cfg.ServiceAccountKey = string(testutil.ServiceAccountJSON(t, "env-project"))

	s, err := Firebase(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "env-project", s.ProjectID)
	assert.Nil(t, s.Storage)
}

func TestFirebase_EnvBase64(t *testing.T) {
	cfg := testConfig(t)
	cfg.ServiceAccountKey = base64.StdEncoding.EncodeToString(testutil.ServiceAccountJSON(t, "env-project"))
	cfg.StorageBucket = "env-project.appspot.com"

	s, err := Firebase(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "env-project", s.ProjectID)
	assert.NotNil(t, s.Storage)
}

func TestFirebase_PrefersEnvOverFile(t *testing.T) {
	cfg := testConfig(t)
	writeKey(t, cfg.CredentialsFile, "file-project")
	cfg.ServiceAccountKey = string(testutil.ServiceAccountJSON(t, "env-project"))

	s, err := Firebase(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "env-project", s.ProjectID)
}

func TestFirebase_FileFallback(t *testing.T) {
	cfg := testConfig(t)
	writeKey(t, cfg.CredentialsFile, "file-project")

	s, err := Firebase(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "file-project", s.ProjectID)
}

func TestFirebase_Malformed(t *testing.T) {
	cfg := testConfig(t)
	cfg.ServiceAccountKey = "definitely not a key"

	_, err := Firebase(context.Background(), cfg, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, credentials.ErrInvalidFormat)
}

func TestFirebase_NoCredentials(t *testing.T) {
	cfg := testConfig(t)

	_, err := Firebase(context.Background(), cfg, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, credentials.ErrNotFound)
}

func TestBootstrap_ShutsDownOnSignal(t *testing.T) {
	cfg := testConfig(t)
	writeKey(t, cfg.CredentialsFile, "file-project")

	notified := make(chan chan<- os.Signal, 1)
	signalNotify = func(c chan<- os.Signal, _ ...os.Signal) {
		notified <- c
	}
	defer func() { signalNotify = defaultSignalNotify }()

	done := make(chan error, 1)
	go func() {
		done <- Bootstrap(context.Background(), cfg, zaptest.NewLogger(t))
	}()

	select {
	case c := <-notified:
		c <- syscall.SIGTERM
	case err := <-done:
		t.Fatalf("bootstrap returned early: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("bootstrap never registered for signals")
	}

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("bootstrap did not shut down")
	}
}
