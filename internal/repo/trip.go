// Package repo contains the persistence logic for the Wanderlist trip collection.
// The whole collection lives, JSON-encoded, under one key of a kv.Surface and
// is rewritten in full on every write. No validation lives here.
package repo

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/wanderlist/internal/domain"
	"github.com/pkordes/wanderlist/internal/kv"
)

// TripsKey is the key the trip collection is stored under.
const TripsKey = "wanderlist_trips"

// Fixed messages for hard storage failures; shown to the user verbatim.
const (
	msgSaveFailed   = "failed to save trip to local storage"
	msgDeleteFailed = "failed to delete trip from local storage"
	msgClearFailed  = "failed to clear trips from local storage"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not on TripStore directly,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create appends trip, or replaces the stored trip with the same ID in
	// place (refreshing UpdatedAt). Returns a *domain.StorageError when the
	// collection cannot be written.
	Create(trip domain.Trip) error

	// ListAll returns every stored trip in insertion order. It never fails:
	// an absent or unreadable collection is returned as an empty slice.
	ListAll() []domain.Trip

	// GetByID returns the trip with the given ID or domain.ErrNotFound.
	GetByID(id string) (domain.Trip, error)

	// Delete removes the trip with the given ID and reports whether one was
	// removed. Returns a *domain.StorageError when the write-back fails.
	Delete(id string) (bool, error)

	// Update applies fn to the stored trip with the given ID and saves the
	// result in place, refreshing UpdatedAt. The lookup, fn and the write
	// happen as one step. Returns domain.ErrNotFound for a missing trip, any
	// error from fn unchanged, or a *domain.StorageError.
	Update(id string, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error)

	// Clear removes the whole collection.
	Clear() error

	// AdvanceStage moves the trip one stage forward and returns it.
	// Missing trips and failed writes are both reported as domain.ErrNotFound.
	AdvanceStage(id string) (domain.Trip, error)
}

// TripStore is the kv.Surface implementation of TripRepo.
// It is safe for concurrent use: every read-modify-write of the collection
// holds mu, so one TripStore must own its surface key.
type TripStore struct {
	mu      sync.Mutex
	surface kv.Surface
	log     *slog.Logger
	now     func() time.Time
}

// Option configures a TripStore.
type Option func(*TripStore)

// WithLogger sets the logger used to report soft failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *TripStore) {
		s.log = l
	}
}

// WithClock overrides the time source used for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *TripStore) {
		s.now = now
	}
}

// NewTripStore constructs a TripStore persisting to surface.
func NewTripStore(surface kv.Surface, opts ...Option) *TripStore {
	s := &TripStore{
		surface: surface,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// compile-time check: TripStore must satisfy TripRepo.
var _ TripRepo = (*TripStore)(nil)

// Create saves trip, replacing an existing record with the same ID in place.
func (s *TripStore) Create(trip domain.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips := s.load()

	replaced := false
	for i := range trips {
		if trips[i].ID == trip.ID {
			trip.UpdatedAt = s.timestamp()
			trips[i] = trip
			replaced = true
			break
		}
	}
	if !replaced {
		trips = append(trips, trip)
	}

	if err := s.write(trips); err != nil {
		s.log.Error("failed to save trip", "trip_id", trip.ID, "error", err)
		return fmt.Errorf("repo.TripStore.Create: %w", &domain.StorageError{Message: msgSaveFailed, Err: err})
	}
	return nil
}

// ListAll reads and decodes the whole collection.
// Trips stored before stages existed are returned as daydreams; the upgrade
// is not written back.
func (s *TripStore) ListAll() []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// GetByID scans the collection for id.
func (s *TripStore) GetByID(id string) (domain.Trip, error) {
	for _, t := range s.ListAll() {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Trip{}, fmt.Errorf("repo.TripStore.GetByID: %w", domain.ErrNotFound)
}

// Update rewrites one trip in place under the store lock.
func (s *TripStore) Update(id string, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips := s.load()
	for i := range trips {
		if trips[i].ID != id {
			continue
		}
		updated, err := fn(trips[i])
		if err != nil {
			return domain.Trip{}, err
		}
		updated.ID = id
		updated.UpdatedAt = s.timestamp()
		trips[i] = updated

		if err := s.write(trips); err != nil {
			s.log.Error("failed to save trip", "trip_id", id, "error", err)
			return domain.Trip{}, fmt.Errorf("repo.TripStore.Update: %w", &domain.StorageError{Message: msgSaveFailed, Err: err})
		}
		return updated, nil
	}
	return domain.Trip{}, fmt.Errorf("repo.TripStore.Update: %w", domain.ErrNotFound)
}

// load reads the collection. Callers hold mu.
func (s *TripStore) load() []domain.Trip {
	raw, ok, err := s.surface.Get(TripsKey)
	if err != nil {
		s.log.Warn("failed to load trips", "error", err)
		return []domain.Trip{}
	}
	if !ok || raw == "" {
		return []domain.Trip{}
	}

	var trips []domain.Trip
	if err := json.Unmarshal([]byte(raw), &trips); err != nil {
		s.log.Warn("failed to load trips", "error", err)
		return []domain.Trip{}
	}
	if trips == nil {
		return []domain.Trip{}
	}

	for i := range trips {
		if trips[i].Stage == "" {
			trips[i].Stage = domain.StageDaydream
		}
	}
	return trips
}

// Delete removes the trip with the given id. Nothing is written when the id
// is not present.
func (s *TripStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips := s.load()

	kept := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(trips) {
		return false, nil
	}

	if err := s.write(kept); err != nil {
		s.log.Error("failed to delete trip", "trip_id", id, "error", err)
		return false, fmt.Errorf("repo.TripStore.Delete: %w", &domain.StorageError{Message: msgDeleteFailed, Err: err})
	}
	return true, nil
}

// Clear removes the storage key entirely.
func (s *TripStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.surface.Remove(TripsKey); err != nil {
		s.log.Error("failed to clear trips", "error", err)
		return fmt.Errorf("repo.TripStore.Clear: %w", &domain.StorageError{Message: msgClearFailed, Err: err})
	}
	return nil
}

// AdvanceStage applies the stage transition daydream → quest → tale.
// A tale is terminal: it is returned unchanged and nothing is written.
func (s *TripStore) AdvanceStage(id string) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips := s.load()

	for i := range trips {
		if trips[i].ID != id {
			continue
		}
		next := trips[i].Stage.Next()
		if next == trips[i].Stage {
			return trips[i], nil
		}
		trips[i].Stage = next
		trips[i].UpdatedAt = s.timestamp()

		if err := s.write(trips); err != nil {
			s.log.Warn("failed to advance trip stage", "trip_id", id, "error", err)
			return domain.Trip{}, fmt.Errorf("repo.TripStore.AdvanceStage: %w", domain.ErrNotFound)
		}
		return trips[i], nil
	}
	return domain.Trip{}, fmt.Errorf("repo.TripStore.AdvanceStage: %w", domain.ErrNotFound)
}

func (s *TripStore) write(trips []domain.Trip) error {
	data, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("encode trips: %w", err)
	}
	return s.surface.Set(TripsKey, string(data))
}

func (s *TripStore) timestamp() string {
	return domain.FormatTimestamp(s.now())
}
