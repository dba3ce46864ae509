// Package server exposes the sync pipeline over HTTP, for running the
// converter on a schedule or behind a webhook instead of from the CLI.
package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/runsync/internal/convert"
	"github.com/claude/runsync/internal/ics"
	"github.com/claude/runsync/internal/upload"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	calendar *ics.Client
	conv     *convert.Converter
	uploads  *upload.Client
	state    *upload.StateDB
	apiKey   string
	log      *slog.Logger
	router   chi.Router
}

// New creates a Server with all routes configured. uploads may be nil, in
// which case sync requests convert only and return the workouts inline.
// An empty apiKey disables request authentication.
func New(calendar *ics.Client, conv *convert.Converter, uploads *upload.Client, state *upload.StateDB, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		calendar: calendar,
		conv:     conv,
		uploads:  uploads,
		state:    state,
		apiKey:   apiKey,
		log:      log,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))

	s.router.Route("/api/v1", func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Post("/sync", s.handleSync)
		r.Get("/workouts", s.handleWorkouts)
	})

	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())
}
