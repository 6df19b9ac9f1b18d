package main

import (
	"context"
	"fmt"
	"os"

	"backend/internal"
	"backend/internal/config"
	"backend/internal/credentials"
	"backend/internal/logging"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error: "+err.Error())
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error: "+err.Error())
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := internal.Bootstrap(context.Background(), cfg, logger); err != nil {
		fields := []zap.Field{zap.Error(err)}
		if isCredentialError(err) {
			fields = append(fields, zap.String("hint", "make sure FIREBASE_SERVICE_ACCOUNT_KEY is set or "+cfg.CredentialsFile+" exists"))
		}
		logger.Fatal("bootstrap error", fields...)
	}
}

func isCredentialError(err error) bool {
	return errors.Is(err, credentials.ErrInvalidFormat) ||
		errors.Is(err, credentials.ErrInvalidCredential) ||
		errors.Is(err, credentials.ErrNotFound)
}
