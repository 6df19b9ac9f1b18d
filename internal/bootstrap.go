package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backend/internal/client"
	"backend/internal/config"
	"backend/internal/credentials"
	"backend/internal/server"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	defaultSignalNotify = signal.Notify
	signalNotify        = defaultSignalNotify
)

// Firebase resolves the service account and initializes the Firebase
// services described by cfg.
func Firebase(ctx context.Context, cfg config.Config, logger *zap.Logger) (*client.Services, error) {
	cred, err := credentials.Resolve(cfg.ServiceAccountKey, cfg.CredentialsFile)
	if err != nil {
		return nil, errors.Wrap(err, "resolve firebase credentials")
	}
	logger.Info("using firebase service account",
		zap.String("source", string(cred.Source)),
		zap.String("clientEmail", cred.ClientEmail),
	)

	return client.New(ctx, client.Options{
		Credential:    cred,
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}, logger)
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	services, err := Firebase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer services.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.New(services, cfg.AllowedOrigins...).Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	exit := make(chan os.Signal, 1)
	signalNotify(exit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-exit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
