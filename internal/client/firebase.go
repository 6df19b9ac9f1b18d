package client

import (
	"context"

	"backend/internal/credentials"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"firebase.google.com/go/storage"
	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "backend/internal/client"

type Options struct {
	Credential *credentials.Credential

	// ProjectID overrides the project named in the credential.
	ProjectID string

	// StorageBucket enables Cloud Storage. Left empty, Services.Storage is nil.
	StorageBucket string
}

// Services holds the Firebase handles shared by the rest of the application.
// They are built once at startup and only read afterwards.
type Services struct {
	App       *firebase.App
	Auth      *auth.Client
	Firestore *firestore.Client

	// Storage is nil when no bucket is configured or it failed to initialize.
	Storage *storage.Client

	ProjectID  string
	BucketName string
}

type storageProvider interface {
	Storage(ctx context.Context) (*storage.Client, error)
}

// New initializes the Firebase Admin SDK and its auth, Firestore and storage
// clients. Failures other than storage are returned; storage failures only
// leave Services.Storage nil.
func New(ctx context.Context, opts Options, logger *zap.Logger) (_ *Services, err error) {
	if opts.Credential == nil {
		return nil, errors.New("firebase: credential is required")
	}

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "client.New",
		trace.WithAttributes(attribute.String("credential.source", string(opts.Credential.Source))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, "firebase init failed")
		}
		span.End()
	}()

	conf := &firebase.Config{
		ProjectID:     opts.ProjectID,
		StorageBucket: opts.StorageBucket,
	}

	app, err := firebase.NewApp(ctx, conf, opts.Credential.ClientOption())
	if err != nil {
		return nil, errors.Wrap(err, "init firebase app")
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init auth")
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init firestore")
	}

	s := &Services{
		App:        app,
		Auth:       authClient,
		Firestore:  firestoreClient,
		ProjectID:  opts.ProjectID,
		BucketName: opts.StorageBucket,
	}
	if s.ProjectID == "" {
		s.ProjectID = opts.Credential.ProjectID
	}

	s.Storage = initStorage(ctx, app, opts.StorageBucket, logger)

	recordInit(ctx, s)
	logger.Info("firebase admin sdk initialized",
		zap.String("projectId", s.ProjectID),
		zap.String("storageBucket", s.BucketName),
		zap.Bool("storage", s.Storage != nil),
	)

	return s, nil
}

func initStorage(ctx context.Context, app storageProvider, bucket string, logger *zap.Logger) *storage.Client {
	if bucket == "" {
		return nil
	}

	c, err := app.Storage(ctx)
	if err == nil {
		_, err = c.DefaultBucket()
	}
	if err != nil {
		logger.Warn("firebase storage not initialized", zap.String("bucket", bucket), zap.Error(err))
		return nil
	}

	return c
}

func recordInit(ctx context.Context, s *Services) {
	counter, err := otel.Meter(instrumentationName).Int64Counter("firebase.init",
		metric.WithDescription("Firebase Admin SDK initializations"))
	if err != nil {
		otel.Handle(err)
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("project", s.ProjectID),
		attribute.Bool("storage", s.Storage != nil),
	))
}
