// Package service contains the business logic for the Wanderlist application.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// It is the single place where trips are validated before they are stored.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/wanderlist/internal/domain"
	"github.com/pkordes/wanderlist/internal/repo"
	"github.com/pkordes/wanderlist/internal/validate"
)

// TripInput carries the user-editable fields of a trip.
// Notes is nil when the user left the field out entirely.
type TripInput struct {
	Title     string
	StartDate string
	EndDate   string
	Notes     *string
}

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
	now  func() time.Time
}

// Option configures a TripService.
type Option func(*TripService)

// WithClock overrides the time source used when creating trips.
func WithClock(now func() time.Time) Option {
	return func(s *TripService) {
		s.now = now
	}
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo, opts ...Option) *TripService {
	s := &TripService{repo: r, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the input, builds a fresh trip and persists it.
func (s *TripService) Create(ctx context.Context, in TripInput) (domain.Trip, error) {
	if fe := CheckDraft(in.draft()); !fe.Empty() {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", &domain.ValidationError{Messages: fe.Messages()})
	}

	trip := domain.NewTripTemplate(in.Title, in.StartDate, in.EndDate, in.Notes, s.now())
	if err := checkRecord(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	if err := s.repo.Create(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return trip, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return t, nil
}

// List returns all trips in insertion order. The result is never nil.
func (s *TripService) List(ctx context.Context) []domain.Trip {
	trips := s.repo.ListAll()
	if trips == nil {
		return []domain.Trip{}
	}
	return trips
}

// Update edits the user-editable fields of an existing trip.
// ID, stage and CreatedAt are carried over from the stored record; stage
// only ever moves through AdvanceStage. The lookup and the write run as one
// repo step so concurrent edits cannot drop each other.
func (s *TripService) Update(ctx context.Context, id string, in TripInput) (domain.Trip, error) {
	updated, err := s.repo.Update(id, func(existing domain.Trip) (domain.Trip, error) {
		if fe := CheckDraft(in.draft()); !fe.Empty() {
			return domain.Trip{}, &domain.ValidationError{Messages: fe.Messages()}
		}

		next := existing
		next.Title = strings.TrimSpace(in.Title)
		next.StartDate = in.StartDate
		next.EndDate = in.EndDate
		next.Notes = nil
		if in.Notes != nil {
			n := strings.TrimSpace(*in.Notes)
			next.Notes = &n
		}
		if err := checkRecord(next); err != nil {
			return domain.Trip{}, err
		}
		return next, nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
func (s *TripService) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if !removed {
		return fmt.Errorf("service.TripService.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// AdvanceStage moves a trip to its next stage.
func (s *TripService) AdvanceStage(ctx context.Context, id string) (domain.Trip, error) {
	t, err := s.repo.AdvanceStage(id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AdvanceStage: %w", err)
	}
	return t, nil
}

// Clear removes every trip.
func (s *TripService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(); err != nil {
		return fmt.Errorf("service.TripService.Clear: %w", err)
	}
	return nil
}

// Summary returns the dashboard counts.
func (s *TripService) Summary(ctx context.Context) domain.Summary {
	return domain.Summarize(s.repo.ListAll())
}

func (in TripInput) draft() Draft {
	return Draft{Title: in.Title, StartDate: in.StartDate, EndDate: in.EndDate, Notes: in.Notes}
}

// checkRecord runs the whole-record gate on a fully built trip.
func checkRecord(t domain.Trip) error {
	res := validate.Record(validate.TripCandidate(t))
	if !res.Valid {
		return &domain.ValidationError{Messages: res.Errors}
	}
	return nil
}
