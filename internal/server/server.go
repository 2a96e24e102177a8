// Package server exposes the analytics engine over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/analytics"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/gradestats"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 10 << 20

// Options configures a Server.
type Options struct {
	Addr        string
	CORSOrigins []string

	// Cluster holds the defaults a kmeans request starts from before query
	// parameters are applied.
	Cluster      analytics.ClusterOptions
	PassingGrade float64
}

// DefaultOptions returns Options for a local dashboard.
func DefaultOptions() Options {
	return Options{
		Addr:         ":8080",
		CORSOrigins:  []string{"http://localhost:3000"},
		Cluster:      analytics.DefaultClusterOptions(),
		PassingGrade: gradestats.DefaultPassingGrade,
	}
}

// Server serves the analytics API. Students is optional; without it the
// GET analytics routes answer 503.
type Server struct {
	svc      *analytics.Service
	students store.StudentRepo
	opts     Options
}

// New creates a Server.
func New(svc *analytics.Service, students store.StudentRepo, opts Options) *Server {
	return &Server{svc: svc, students: students, opts: opts}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/analytics", func(ar chi.Router) {
		ar.Post("/saw", s.postPriority)
		ar.Get("/saw", s.getPriority)
		ar.Post("/kmeans", s.postCluster)
		ar.Get("/kmeans", s.getCluster)
		ar.Post("/stats", s.postStats)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("siswa api listening on %s", s.opts.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
