package client

import (
	"context"

	gcs "cloud.google.com/go/storage"
	"github.com/go-faster/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	probeCollection = "_health"
	probeDocument   = "probe"
)

var ErrStorageUnavailable = errors.New("firebase storage is not initialized")

type State string

const (
	StateOK       State = "ok"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

type Check struct {
	State State  `json:"state"`
	Error string `json:"error,omitempty"`
}

type Status struct {
	ProjectID string `json:"projectId"`
	Bucket    string `json:"bucket,omitempty"`
	Auth      Check  `json:"auth"`
	Firestore Check  `json:"firestore"`
	Storage   Check  `json:"storage"`
}

// Healthy reports whether the required services are reachable. Storage is
// optional and never affects the result.
func (s Status) Healthy() bool {
	return s.Auth.State == StateOK && s.Firestore.State == StateOK
}

// Bucket returns the configured default bucket.
func (s *Services) Bucket() (*gcs.BucketHandle, error) {
	if s.Storage == nil {
		return nil, ErrStorageUnavailable
	}
	return s.Storage.DefaultBucket()
}

// Check probes each service. A missing probe document still proves Firestore
// answered.
func (s *Services) Check(ctx context.Context) Status {
	st := Status{ProjectID: s.ProjectID, Bucket: s.BucketName}

	if s.Auth != nil {
		st.Auth = Check{State: StateOK}
	} else {
		st.Auth = Check{State: StateDisabled}
	}

	st.Firestore = s.checkFirestore(ctx)
	st.Storage = s.checkStorage(ctx)

	return st
}

func (s *Services) checkFirestore(ctx context.Context) Check {
	if s.Firestore == nil {
		return Check{State: StateDisabled}
	}

	_, err := s.Firestore.Collection(probeCollection).Doc(probeDocument).Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return Check{State: StateError, Error: err.Error()}
	}

	return Check{State: StateOK}
}

func (s *Services) checkStorage(ctx context.Context) Check {
	if s.Storage == nil {
		return Check{State: StateDisabled}
	}

	bucket, err := s.Bucket()
	if err != nil {
		return Check{State: StateError, Error: err.Error()}
	}
	if _, err := bucket.Attrs(ctx); err != nil {
		return Check{State: StateError, Error: err.Error()}
	}

	return Check{State: StateOK}
}

// Collections lists the IDs of the top-level Firestore collections.
func (s *Services) Collections(ctx context.Context) ([]string, error) {
	iter := s.Firestore.Collections(ctx)

	var ids []string
	for {
		ref, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "list collections")
		}
		ids = append(ids, ref.ID)
	}

	return ids, nil
}

func (s *Services) Close() error {
	if s == nil || s.Firestore == nil {
		return nil
	}
	return s.Firestore.Close()
}
