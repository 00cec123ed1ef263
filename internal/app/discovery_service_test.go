package app

import (
	"errors"
	"testing"
	"time"

	"github.com/cimillas/eventfinder/internal/clock"
	"github.com/cimillas/eventfinder/internal/domain"
	"github.com/cimillas/eventfinder/internal/query"
)

func ids(events []domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func equalIDs(t *testing.T, got []domain.Event, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, g)
		}
	}
}

func TestDiscoveryService_Search(t *testing.T) {
	t.Parallel()

	wednesday := time.Date(2025, 3, 5, 12, 0, 0, 0, sast)
	svc := NewDiscoveryService(newTestCatalog(), clock.NewFixed(wednesday), WithLocation(sast))

	equalIDs(t, svc.Search(query.Criteria{}), "1", "2", "3", "4")
	equalIDs(t, svc.Search(query.Criteria{City: "cape town"}), "1", "4")
	equalIDs(t, svc.Search(query.Criteria{Bucket: query.BucketToday}), "2")
	equalIDs(t, svc.Search(query.Criteria{Bucket: query.BucketWeekend}), "1", "3")
	equalIDs(t, svc.Search(query.Criteria{Bucket: query.BucketFree}), "3")
}

func TestDiscoveryService_Reads(t *testing.T) {
	t.Parallel()

	svc := NewDiscoveryService(newTestCatalog(), clock.NewFixed(time.Now()), WithLocation(sast))

	if _, err := svc.Get(""); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.Get("99"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	got, err := svc.Get("2")
	if err != nil || got.Title != "Tech Summit" {
		t.Fatalf("unexpected event %+v err %v", got, err)
	}

	equalIDs(t, svc.Featured(), "1", "3")
	if cats := svc.Categories(); len(cats) != 4 || cats[0] != "Music" {
		t.Fatalf("unexpected categories %v", cats)
	}
	if cities := svc.Cities(); len(cities) != 3 || cities[2] != "Durban" {
		t.Fatalf("unexpected cities %v", cities)
	}
	if svc.Location() != sast {
		t.Fatalf("expected configured location")
	}
}

func TestDiscoveryService_Calendar(t *testing.T) {
	t.Parallel()

	svc := NewDiscoveryService(newTestCatalog(), clock.NewFixed(time.Now()), WithLocation(sast))

	equalIDs(t, svc.Day(time.Date(2025, 3, 8, 0, 0, 0, 0, sast)), "1")
	equalIDs(t, svc.Day(time.Date(2025, 3, 7, 0, 0, 0, 0, sast)))

	days := svc.Days(time.Date(2025, 3, 2, 0, 0, 0, 0, sast), time.Date(2025, 3, 8, 0, 0, 0, 0, sast))
	if len(days) != 2 || days[0].Date != "2025-03-05" || days[1].Date != "2025-03-08" {
		t.Fatalf("unexpected days %+v", days)
	}
	if all := svc.Days(time.Time{}, time.Time{}); len(all) != 4 {
		t.Fatalf("expected 4 days, got %d", len(all))
	}
}
