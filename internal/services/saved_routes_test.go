package services

import (
	"commute-learning-service/internal/adapters/kvstore"
	"commute-learning-service/internal/domain"
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"
)

type failingKV struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, f.getErr
}

func (f *failingKV) Set(context.Context, string, string) error {
	f.sets++
	return f.setErr
}

func newTestStore(kv *kvstore.MemoryStore) *SavedRouteStore {
	s := NewSavedRouteStore(kv)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC) }
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func routeIDs(rs []domain.SavedRoute) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestSavedRoutesListEmpty(t *testing.T) {
	s := newTestStore(kvstore.NewMemoryStore())

	got := s.List(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestSavedRoutesUpsertAppendsThenReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(kvstore.NewMemoryStore())

	a, _ := s.Upsert(ctx, domain.SavedRoute{Label: "출근", Origin: "강남", Destination: "잠실", LastCalculatedMinutes: 15})
	_, _ = s.Upsert(ctx, domain.SavedRoute{ID: "home", Label: "퇴근", Origin: "잠실", Destination: "강남"})

	if a.ID != "id-1" {
		t.Fatalf("expected generated id, got %q", a.ID)
	}
	if a.LastUpdated != "2024-05-01T08:30:00Z" {
		t.Fatalf("expected stamped LastUpdated, got %q", a.LastUpdated)
	}

	updated := a
	updated.LastCalculatedMinutes = 22
	_, all := s.Upsert(ctx, updated)

	if !slices.Equal(routeIDs(all), []string{"id-1", "home"}) {
		t.Fatalf("expected in-place replace, got %v", routeIDs(all))
	}
	if all[0].LastCalculatedMinutes != 22 {
		t.Fatalf("expected updated minutes 22, got %d", all[0].LastCalculatedMinutes)
	}

	if got := s.List(ctx); !slices.Equal(routeIDs(got), []string{"id-1", "home"}) {
		t.Fatalf("expected persisted list, got %v", routeIDs(got))
	}
}

func TestSavedRoutesUpsertKeepsProvidedTimestamp(t *testing.T) {
	s := newTestStore(kvstore.NewMemoryStore())

	r, _ := s.Upsert(context.Background(), domain.SavedRoute{ID: "x", LastUpdated: "2023-01-01T00:00:00Z"})
	if r.LastUpdated != "2023-01-01T00:00:00Z" {
		t.Fatalf("expected provided timestamp kept, got %q", r.LastUpdated)
	}
}

func TestSavedRoutesRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(kvstore.NewMemoryStore())

	for _, id := range []string{"a", "b", "c"} {
		s.Upsert(ctx, domain.SavedRoute{ID: id})
	}

	got := s.Remove(ctx, "b")
	if !slices.Equal(routeIDs(got), []string{"a", "c"}) {
		t.Fatalf("expected [a c], got %v", routeIDs(got))
	}

	got = s.Remove(ctx, "missing")
	if !slices.Equal(routeIDs(got), []string{"a", "c"}) {
		t.Fatalf("expected unknown id to be a no-op, got %v", routeIDs(got))
	}
}

func TestSavedRoutesRemoveUnknownDoesNotWrite(t *testing.T) {
	kv := &failingKV{}
	s := NewSavedRouteStore(kv)

	s.Remove(context.Background(), "nope")
	if kv.sets != 0 {
		t.Fatalf("expected no write, got %d", kv.sets)
	}
}

func TestSavedRoutesCorruptValueReadsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	_ = kv.Set(ctx, SavedRoutesKey, "{not json")

	s := newTestStore(kv)
	if got := s.List(ctx); len(got) != 0 {
		t.Fatalf("expected empty list for corrupt data, got %v", got)
	}

	_, all := s.Upsert(ctx, domain.SavedRoute{ID: "fresh"})
	if !slices.Equal(routeIDs(all), []string{"fresh"}) {
		t.Fatalf("expected corrupt data replaced, got %v", routeIDs(all))
	}
}

func TestSavedRoutesDuplicateIDsKeepFirst(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	_ = kv.Set(ctx, SavedRoutesKey, `[{"id":"a","label":"first"},{"id":"b"},{"id":"a","label":"second"}]`)

	got := newTestStore(kv).List(ctx)
	if !slices.Equal(routeIDs(got), []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", routeIDs(got))
	}
	if got[0].Label != "first" {
		t.Fatalf("expected first entry kept, got %q", got[0].Label)
	}
}

func TestSavedRoutesStorageFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{getErr: errors.New("read boom"), setErr: errors.New("write boom")}
	s := NewSavedRouteStore(kv)

	if got := s.List(ctx); len(got) != 0 {
		t.Fatalf("expected empty list on read failure, got %v", got)
	}

	r, all := s.Upsert(ctx, domain.SavedRoute{Label: "x"})
	if r.ID == "" {
		t.Fatalf("expected generated id even when the write fails")
	}
	if len(all) != 1 || kv.sets != 1 {
		t.Fatalf("expected one route and one write attempt, got %d routes, %d writes", len(all), kv.sets)
	}
}

func TestSavedRoutesNilStore(t *testing.T) {
	s := NewSavedRouteStore(nil)

	_, all := s.Upsert(context.Background(), domain.SavedRoute{ID: "a"})
	if len(all) != 1 {
		t.Fatalf("expected the upserted route echoed back, got %v", all)
	}
	if got := s.List(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty list without a store, got %v", got)
	}
}
