package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"backend/internal"
	"backend/internal/config"
	"backend/internal/logging"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	app := kingpin.New("check", "Verify the Firebase service account and report which services are reachable")
	credentialsFile := app.Flag("credentials-file", "Service account key file; ignores FIREBASE_SERVICE_ACCOUNT_KEY when set").String()
	timeout := app.Flag("timeout", "Deadline for all probes").Default("15s").Duration()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error: "+err.Error())
		os.Exit(1)
	}
	if *credentialsFile != "" {
		cfg.ServiceAccountKey = ""
		cfg.CredentialsFile = *credentialsFile
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error: "+err.Error())
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(cfg, *timeout, logger); err != nil {
		logger.Fatal("check failed", zap.Error(err))
	}
}

func run(cfg config.Config, timeout time.Duration, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	services, err := internal.Firebase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer services.Close()

	st := services.Check(ctx)
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))

	if ids, err := services.Collections(ctx); err != nil {
		logger.Warn("list collections", zap.Error(err))
	} else {
		logger.Info("firestore collections", zap.Strings("ids", ids))
	}

	if !st.Healthy() {
		return errors.New("firebase services unhealthy")
	}
	return nil
}
