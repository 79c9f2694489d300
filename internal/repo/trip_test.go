package repo_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wanderlist/internal/domain"
	"github.com/pkordes/wanderlist/internal/kv"
	"github.com/pkordes/wanderlist/internal/repo"
	"github.com/pkordes/wanderlist/testutil"
)

// failingSurface is a hand-written kv.Surface double. Each method is a
// function field; unset fields fall through to an in-memory surface.
type failingSurface struct {
	mem    *kv.Memory
	get    func(key string) (string, bool, error)
	set    func(key, value string) error
	remove func(key string) error
}

func (f *failingSurface) Get(key string) (string, bool, error) {
	if f.get != nil {
		return f.get(key)
	}
	return f.mem.Get(key)
}

func (f *failingSurface) Set(key, value string) error {
	if f.set != nil {
		return f.set(key, value)
	}
	return f.mem.Set(key, value)
}

func (f *failingSurface) Remove(key string) error {
	if f.remove != nil {
		return f.remove(key)
	}
	return f.mem.Remove(key)
}

var _ kv.Surface = (*failingSurface)(nil)

var fixedNow = time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

const fixedStamp = "2025-02-01T09:00:00.000Z"

// newTestStore returns a TripStore over a fresh in-memory surface with a
// fixed clock and a silent logger.
func newTestStore(t *testing.T) (*repo.TripStore, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	return newStoreOn(mem), mem
}

func newStoreOn(s kv.Surface) *repo.TripStore {
	return repo.NewTripStore(s,
		repo.WithClock(func() time.Time { return fixedNow }),
		repo.WithLogger(slog.New(slog.DiscardHandler)),
	)
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture(id string) domain.Trip {
	return domain.Trip{
		ID:        id,
		Title:     "Summer Road Trip",
		StartDate: "2025-07-01",
		EndDate:   "2025-07-07",
		Stage:     domain.StageDaydream,
		CreatedAt: "2025-01-15T10:00:00Z",
		UpdatedAt: "2025-01-15T10:00:00Z",
	}
}

func TestTripStore_Create_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	notes := "Family vacation"
	want := tripFixture("trip-1")
	want.Notes = &notes

	require.NoError(t, s.Create(want))
	got, err := s.GetByID("trip-1")

	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetByID mismatch (-want +got):\n%s", diff)
	}
}

func TestTripStore_Create_PersistsLayout(t *testing.T) {
	s, mem := newTestStore(t)

	require.NoError(t, s.Create(tripFixture("t1")))

	raw, ok, err := mem.Get(repo.TripsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{
		"id": "t1",
		"title": "Summer Road Trip",
		"startDate": "2025-07-01",
		"endDate": "2025-07-07",
		"stage": "daydream",
		"createdAt": "2025-01-15T10:00:00Z",
		"updatedAt": "2025-01-15T10:00:00Z"
	}]`, raw)
}

func TestTripStore_Create_WithoutStage_ListsAsDaydream(t *testing.T) {
	s, _ := newTestStore(t)
	trip := tripFixture("t1")
	trip.Title = "Trip"
	trip.Stage = ""

	require.NoError(t, s.Create(trip))
	trips := s.ListAll()

	require.Len(t, trips, 1)
	assert.Equal(t, domain.StageDaydream, trips[0].Stage)
	assert.Equal(t, "Trip", trips[0].Title)
}

func TestTripStore_Create_SameIDReplacesInPlace(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Create(tripFixture("a")))
	require.NoError(t, s.Create(tripFixture("b")))
	require.NoError(t, s.Create(tripFixture("c")))

	updated := tripFixture("b")
	updated.Title = "Updated Road Trip"
	require.NoError(t, s.Create(updated))

	trips := s.ListAll()
	require.Len(t, trips, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{trips[0].ID, trips[1].ID, trips[2].ID})
	assert.Equal(t, "Updated Road Trip", trips[1].Title)
	assert.Equal(t, fixedStamp, trips[1].UpdatedAt, "replace refreshes UpdatedAt")
	assert.Equal(t, "2025-01-15T10:00:00Z", trips[1].CreatedAt, "replace keeps CreatedAt")
}

func TestTripStore_Create_AllowsStageRegression(t *testing.T) {
	// The store does not guard stage order; only AdvanceStage moves stages
	// and the service never exposes a direct stage setter.
	s, _ := newTestStore(t)
	tale := tripFixture("t1")
	tale.Stage = domain.StageTale
	require.NoError(t, s.Create(tale))

	require.NoError(t, s.Create(tripFixture("t1")))

	got, err := s.GetByID("t1")
	require.NoError(t, err)
	assert.Equal(t, domain.StageDaydream, got.Stage)
}

func TestTripStore_Create_WriteFailure(t *testing.T) {
	quotaErr := errors.New("storage quota exceeded")
	s := newStoreOn(&failingSurface{
		mem: kv.NewMemory(),
		set: func(string, string) error { return quotaErr },
	})

	err := s.Create(tripFixture("t1"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, quotaErr)
	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "failed to save trip to local storage", se.Message)
}

func TestTripStore_Create_QuotaExceeded(t *testing.T) {
	s := newStoreOn(kv.NewMemory(kv.WithQuota(64)))

	err := s.Create(tripFixture("t1"))

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, kv.ErrQuotaExceeded)
}

func TestTripStore_ListAll_Empty(t *testing.T) {
	s, _ := newTestStore(t)

	trips := s.ListAll()

	assert.NotNil(t, trips)
	assert.Empty(t, trips)
}

func TestTripStore_ListAll_Corrupted(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":      "invalid json",
		"object":        `{"id":"t1"}`,
		"null":          "null",
		"wrong element": `[{"id":"t1","title":5}]`,
		"empty string":  "",
	} {
		t.Run(name, func(t *testing.T) {
			s, mem := newTestStore(t)
			require.NoError(t, mem.Set(repo.TripsKey, raw))

			trips := s.ListAll()

			assert.NotNil(t, trips)
			assert.Empty(t, trips)
		})
	}
}

func TestTripStore_ListAll_ReadFailure(t *testing.T) {
	s := newStoreOn(&failingSurface{
		mem: kv.NewMemory(),
		get: func(string) (string, bool, error) { return "", false, errors.New("security error") },
	})

	assert.Empty(t, s.ListAll())
}

func TestTripStore_ListAll_UpgradeNotWrittenBack(t *testing.T) {
	s, mem := newTestStore(t)
	legacy := `[{"id":"t1","title":"Old","startDate":"2025-07-01","endDate":"2025-07-07","createdAt":"2025-01-15T10:00:00Z","updatedAt":"2025-01-15T10:00:00Z"}]`
	require.NoError(t, mem.Set(repo.TripsKey, legacy))

	trips := s.ListAll()

	require.Len(t, trips, 1)
	assert.Equal(t, domain.StageDaydream, trips[0].Stage)
	raw, _, _ := mem.Get(repo.TripsKey)
	assert.Equal(t, legacy, raw)
}

func TestTripStore_GetByID(t *testing.T) {
	s, _ := newTestStore(t)
	t2 := tripFixture("trip-2")
	t2.Title = "Trip 2"
	require.NoError(t, s.Create(tripFixture("trip-1")))
	require.NoError(t, s.Create(t2))

	got, err := s.GetByID("trip-2")

	require.NoError(t, err)
	assert.Equal(t, t2, got)
}

func TestTripStore_GetByID_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.GetByID("nonexistent")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripStore_Delete(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Create(tripFixture("trip-1")))

	removed, err := s.Delete("trip-1")

	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, s.ListAll())
}

func TestTripStore_Delete_Absent(t *testing.T) {
	writes := 0
	mem := kv.NewMemory()
	s := newStoreOn(&failingSurface{
		mem: mem,
		set: func(k, v string) error { writes++; return mem.Set(k, v) },
	})
	require.NoError(t, s.Create(tripFixture("trip-1")))
	before, _, _ := mem.Get(repo.TripsKey)

	removed, err := s.Delete("nonexistent")

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, writes, "absent delete must not write")
	after, _, _ := mem.Get(repo.TripsKey)
	assert.Equal(t, before, after)
}

func TestTripStore_Delete_WriteFailure(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, newStoreOn(mem).Create(tripFixture("trip-1")))
	s := newStoreOn(&failingSurface{
		mem: mem,
		set: func(string, string) error { return errors.New("storage error") },
	})

	_, err := s.Delete("trip-1")

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.EqualError(t, errors.Unwrap(err), "failed to delete trip from local storage")
}

func TestTripStore_Clear(t *testing.T) {
	s, mem := newTestStore(t)
	require.NoError(t, s.Create(tripFixture("trip-1")))

	require.NoError(t, s.Clear())

	_, ok, err := mem.Get(repo.TripsKey)
	require.NoError(t, err)
	assert.False(t, ok, "clear removes the key entirely")
}

func TestTripStore_Clear_Failure(t *testing.T) {
	s := newStoreOn(&failingSurface{
		mem:    kv.NewMemory(),
		remove: func(string) error { return errors.New("storage error") },
	})

	err := s.Clear()

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "failed to clear trips from local storage")
}

func TestTripStore_AdvanceStage_Monotonic(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Create(tripFixture("t1")))

	var got []domain.Stage
	for range 3 {
		trip, err := s.AdvanceStage("t1")
		require.NoError(t, err)
		got = append(got, trip.Stage)
	}

	assert.Equal(t, []domain.Stage{domain.StageQuest, domain.StageTale, domain.StageTale}, got)

	stored, err := s.GetByID("t1")
	require.NoError(t, err)
	assert.Equal(t, domain.StageTale, stored.Stage)
	assert.Equal(t, fixedStamp, stored.UpdatedAt)
}

func TestTripStore_AdvanceStage_TaleIsNoOp(t *testing.T) {
	s, mem := newTestStore(t)
	tale := tripFixture("t1")
	tale.Stage = domain.StageTale
	require.NoError(t, s.Create(tale))
	before, _, _ := mem.Get(repo.TripsKey)

	got, err := s.AdvanceStage("t1")

	require.NoError(t, err)
	assert.Equal(t, tale, got)
	after, _, _ := mem.Get(repo.TripsKey)
	assert.Equal(t, before, after)
}

func TestTripStore_AdvanceStage_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AdvanceStage("nonexistent")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripStore_AdvanceStage_WriteFailureIsSoft(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, newStoreOn(mem).Create(tripFixture("t1")))
	s := newStoreOn(&failingSurface{
		mem: mem,
		set: func(string, string) error { return errors.New("storage error") },
	})

	_, err := s.AdvanceStage("t1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrStorage)
}

// ---- Update ----------------------------------------------------------------

func TestTripStore_Update(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Create(tripFixture("a")))
	require.NoError(t, s.Create(tripFixture("b")))

	got, err := s.Update("b", func(tr domain.Trip) (domain.Trip, error) {
		tr.Title = "Edited"
		tr.ID = "hijacked"
		return tr, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "b", got.ID, "Update keeps the ID")
	assert.Equal(t, fixedStamp, got.UpdatedAt)
	trips := s.ListAll()
	require.Len(t, trips, 2)
	assert.Equal(t, "b", trips[1].ID)
	assert.Equal(t, "Edited", trips[1].Title)
}

func TestTripStore_Update_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	called := false

	_, err := s.Update("ghost", func(tr domain.Trip) (domain.Trip, error) {
		called = true
		return tr, nil
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, called)
}

func TestTripStore_Update_CallbackErrorWritesNothing(t *testing.T) {
	s, mem := newTestStore(t)
	require.NoError(t, s.Create(tripFixture("a")))
	before, _, err := mem.Get(repo.TripsKey)
	require.NoError(t, err)
	rejected := errors.New("rejected")

	_, err = s.Update("a", func(domain.Trip) (domain.Trip, error) { return domain.Trip{}, rejected })

	assert.ErrorIs(t, err, rejected)
	after, _, err := mem.Get(repo.TripsKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTripStore_Update_WriteFailure(t *testing.T) {
	fs := &failingSurface{mem: kv.NewMemory()}
	s := newStoreOn(fs)
	require.NoError(t, s.Create(tripFixture("a")))
	fs.set = func(string, string) error { return errors.New("disk full") }

	_, err := s.Update("a", func(tr domain.Trip) (domain.Trip, error) { return tr, nil })

	assert.ErrorIs(t, err, domain.ErrStorage)
}

// ---- Concurrency -----------------------------------------------------------

// TestTripStore_ConcurrentWrites runs creates, advances and deletes from many
// goroutines against one store over the file surface. Each read-modify-write
// must see the previous one, so no successful write may be lost.
func TestTripStore_ConcurrentWrites(t *testing.T) {
	surface, err := kv.NewFile(t.TempDir())
	require.NoError(t, err)
	s := newStoreOn(surface)

	const n = 100
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Create(tripFixture(fmt.Sprintf("t%03d", i))))
		}()
	}
	wg.Wait()
	require.Len(t, s.ListAll(), n)

	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("t%03d", i)
			if i%2 == 0 {
				_, err := s.AdvanceStage(id)
				assert.NoError(t, err)
				return
			}
			removed, err := s.Delete(id)
			assert.NoError(t, err)
			assert.True(t, removed)
		}()
	}
	wg.Wait()

	trips := s.ListAll()
	require.Len(t, trips, n/2)
	for _, tr := range trips {
		assert.Equal(t, domain.StageQuest, tr.Stage, "advance lost for %s", tr.ID)
	}
}

// TestTripStore_OverSQLite runs the store round trip on the sqlite surface.
func TestTripStore_OverSQLite(t *testing.T) {
	db := testutil.NewSQLDB(t)
	require.NoError(t, kv.Migrate(context.Background(), db))
	s := newStoreOn(kv.NewSQLite(db))

	want := tripFixture("t1")
	require.NoError(t, s.Create(want))
	require.NoError(t, s.Create(tripFixture("t2")))
	removed, err := s.Delete("t2")
	require.NoError(t, err)
	require.True(t, removed)

	got, err := s.GetByID("t1")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetByID mismatch (-want +got):\n%s", diff)
	}

	var stored string
	require.NoError(t, db.QueryRow(`SELECT value FROM kv_items WHERE key = ?`, repo.TripsKey).Scan(&stored))
	assert.Contains(t, stored, `"id":"t1"`)
	assert.NotContains(t, stored, `"id":"t2"`)
}
