// Package handler implements the local JSON API the Wanderlist front end
// talks to. All handlers are methods on Server; they are split into
// resource-specific files (health.go, trip.go, export.go) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/wanderlist/api"
	"github.com/pkordes/wanderlist/internal/domain"
	"github.com/pkordes/wanderlist/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage or the service layer.
type TripServicer interface {
	Create(ctx context.Context, in service.TripInput) (domain.Trip, error)
	GetByID(ctx context.Context, id string) (domain.Trip, error)
	List(ctx context.Context) []domain.Trip
	Update(ctx context.Context, id string, in service.TripInput) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
	AdvanceStage(ctx context.Context, id string) (domain.Trip, error)
	Clear(ctx context.Context) error
	Summary(ctx context.Context) domain.Summary
}

// Exporter produces the flat trip export.
type Exporter interface {
	Export(ctx context.Context) []domain.ExportRow
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips  TripServicer
	export Exporter
	log    *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(trips TripServicer, export Exporter, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, export: export, log: log}
}

// Routes returns a router with every API endpoint registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Delete("/", s.ClearTrips)
		r.Get("/summary", s.GetSummary)
		r.Post("/validate", s.ValidateTrip)
		r.Get("/{id}", s.GetTrip)
		r.Put("/{id}", s.UpdateTrip)
		r.Delete("/{id}", s.DeleteTrip)
		r.Post("/{id}/advance", s.AdvanceTrip)
	})

	r.Get("/export", s.GetExport)

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(api.OpenAPI)
}
