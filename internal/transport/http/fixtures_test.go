package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cimillas/eventfinder/internal/app"
	"github.com/cimillas/eventfinder/internal/catalog"
	"github.com/cimillas/eventfinder/internal/clock"
	"github.com/cimillas/eventfinder/internal/domain"
)

var sast = time.FixedZone("SAST", 2*60*60)

// Friday 2025-03-14 09:00 SAST.
var testNow = time.Date(2025, 3, 14, 9, 0, 0, 0, sast)

func testCatalogEvents() []domain.Event {
	return []domain.Event{
		{
			ID:        "1",
			Title:     "Jazz on the Lawn",
			StartsAt:  time.Date(2025, 3, 14, 18, 0, 0, 0, sast),
			Location:  "Kirstenbosch",
			City:      "Cape Town",
			Category:  "Music",
			Organizer: domain.Organizer{Name: "Cape Jazz Society"},
			Price:     "R150",
			Featured:  true,
		},
		{
			ID:        "2",
			Title:     "Braai Masterclass",
			StartsAt:  time.Date(2025, 3, 15, 12, 0, 0, 0, sast),
			Location:  "Maboneng",
			City:      "Johannesburg",
			Category:  "Food & Drink",
			Organizer: domain.Organizer{Name: "Fire Collective"},
			Price:     domain.FreePrice,
		},
		{
			ID:        "3",
			Title:     "Tech Meetup",
			StartsAt:  time.Date(2025, 3, 20, 17, 30, 0, 0, sast),
			Location:  "Workshop17",
			City:      "Cape Town",
			Category:  "Technology",
			Organizer: domain.Organizer{Name: "Devs ZA"},
		},
	}
}

func newTestDiscovery(t *testing.T) (*app.DiscoveryService, *catalog.Store) {
	t.Helper()

	store, err := catalog.New(testCatalogEvents())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return app.NewDiscoveryService(store, clock.NewFixed(testNow), app.WithLocation(sast)), store
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func serveRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d (%s)", status, rec.Code, rec.Body.String())
	}
	var resp errorResponse
	decodeBody(t, rec, &resp)
	if resp.Code != code {
		t.Fatalf("expected code %s, got %s", code, resp.Code)
	}
}

type stubCreator struct {
	got app.CreateEventInput
	err error
}

func (s *stubCreator) CreateEvent(_ context.Context, in app.CreateEventInput) (domain.Event, error) {
	s.got = in
	if s.err != nil {
		return domain.Event{}, s.err
	}
	return domain.Event{
		ID:       "new-1",
		Title:    in.Title,
		StartsAt: in.StartsAt,
		City:     in.City,
		Category: in.Category,
		Price:    domain.PriceFromAmount(in.Price, "R"),
		Status:   domain.EventStatusActive,
	}, nil
}

type stubRegistrar struct {
	gotRegister app.RegisterInput
	registerErr error
	registered  map[string]bool
	userEvents  []domain.Event
	listErr     error
}

func (s *stubRegistrar) Register(_ context.Context, in app.RegisterInput) (domain.Registration, error) {
	s.gotRegister = in
	if s.registerErr != nil {
		return domain.Registration{}, s.registerErr
	}
	return domain.Registration{
		ID:           "reg-1",
		EventID:      in.EventID,
		UserID:       in.UserID,
		Status:       domain.RegistrationStatusRegistered,
		RegisteredAt: testNow,
	}, nil
}

func (s *stubRegistrar) IsRegistered(_ context.Context, eventID, userID string) (bool, error) {
	return s.registered[eventID+"/"+userID], nil
}

func (s *stubRegistrar) ListForUser(_ context.Context, _ string) ([]domain.Event, error) {
	return s.userEvents, s.listErr
}

type stubRecommender struct {
	recs app.Recommendations
	err  error
}

func (s stubRecommender) Recommend(_ context.Context, _ app.RecommendInput) (app.Recommendations, error) {
	return s.recs, s.err
}

type stubNotifier struct {
	got  app.NotifyInput
	data map[string]any
	err  error
}

func (s *stubNotifier) Notify(_ context.Context, in app.NotifyInput) (map[string]any, error) {
	s.got = in
	return s.data, s.err
}
