package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/wanderlist/internal/domain"
	"github.com/pkordes/wanderlist/internal/service"
)

// TripRequest is the body of POST /trips, PUT /trips/{id} and
// POST /trips/validate. Stage is only read by the validate endpoint.
type TripRequest struct {
	Title     *string `json:"title"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Notes     *string `json:"notes"`
	Stage     *string `json:"stage,omitempty"`
}

// Pagination describes the page returned by GET /trips.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripListResponse is the body of GET /trips.
type TripListResponse struct {
	Data       []domain.Trip `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// ValidateResponse is the body of POST /trips/validate.
type ValidateResponse struct {
	Valid  bool                `json:"valid"`
	Fields service.FieldErrors `json:"fields"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTripRequest(w, r)
	if !ok {
		return
	}

	created, err := s.trips.Create(r.Context(), req.input())
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		s.writeJSON(w, http.StatusBadRequest, requestBody("invalid format for parameter page"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		s.writeJSON(w, http.StatusBadRequest, requestBody("invalid format for parameter limit"))
		return
	}
	params := domain.NewPaginationParams(page, limit)

	trips := s.trips.List(r.Context())
	s.writeJSON(w, http.StatusOK, TripListResponse{
		Data: domain.Paginate(trips, params),
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: len(trips),
		},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tripID(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	s.writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tripID(w, r)
	if !ok {
		return
	}
	req, ok := s.decodeTripRequest(w, r)
	if !ok {
		return
	}

	updated, err := s.trips.Update(r.Context(), id, req.input())
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tripID(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdvanceTrip handles POST /trips/{id}/advance.
func (s *Server) AdvanceTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tripID(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.AdvanceStage(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	s.writeJSON(w, http.StatusOK, trip)
}

// ClearTrips handles DELETE /trips.
func (s *Server) ClearTrips(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Clear(r.Context()); err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary handles GET /trips/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.trips.Summary(r.Context()))
}

// ValidateTrip handles POST /trips/validate.
// It never stores anything; the form calls it as the user types.
func (s *Server) ValidateTrip(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTripRequest(w, r)
	if !ok {
		return
	}

	in := req.input()
	fe := service.CheckDraft(service.Draft{
		Title:     in.Title,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Notes:     in.Notes,
		Stage:     req.Stage,
	})
	s.writeJSON(w, http.StatusOK, ValidateResponse{Valid: fe.Empty(), Fields: fe})
}

// --- mapping helpers --------------------------------------------------------

// decodeTripRequest reads the JSON body. On failure it writes the error
// response itself and returns false.
func (s *Server) decodeTripRequest(w http.ResponseWriter, r *http.Request) (TripRequest, bool) {
	var req TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			s.writeJSON(w, http.StatusRequestEntityTooLarge, requestBody("request body too large"))
		case errors.Is(err, io.EOF):
			s.writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		default:
			s.writeJSON(w, http.StatusBadRequest, requestBody("invalid JSON body"))
		}
		return TripRequest{}, false
	}
	return req, true
}

// input converts the request into service input. Missing strings become ""
// so the validators report them; missing notes stay nil.
func (req TripRequest) input() service.TripInput {
	return service.TripInput{
		Title:     deref(req.Title),
		StartDate: deref(req.StartDate),
		EndDate:   deref(req.EndDate),
		Notes:     req.Notes,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// tripID binds the {id} path parameter. On failure it writes a 400 and
// returns false.
func (s *Server) tripID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, requestBody("invalid format for parameter id"))
		return "", false
	}
	return id, true
}
