package server

import (
	"context"
	"encoding/json"
	"net/http"

	"backend/internal/client"

	"github.com/go-chi/chi/v5"
	rscors "github.com/rs/cors"
)

type Checker interface {
	Check(ctx context.Context) client.Status
}

// New routes the health endpoints. With no allowed origins, any origin may
// read them.
func New(checker Checker, allowedOrigins ...string) Server {
	s := Server{checker: checker}

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	cors := rscors.New(rscors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})

	r := chi.NewRouter()
	r.Use(cors.Handler)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(""))
	})
	r.Get("/health", s.HealthHandler)
	s.Handler = r
	return s
}

type Server struct {
	http.Handler
	checker Checker
}

func (svc *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	st := svc.checker.Check(r.Context())

	b, err := json.Marshal(st)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.Header().Set("Cache-Control", "no-store")
	if !st.Healthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_, _ = w.Write(b)
}
