package http

import (
	"net/http"
	"strings"
	"testing"

	ical "github.com/arran4/golang-ical"
)

func TestHandleCalendarDay(t *testing.T) {
	t.Parallel()

	svc, _ := newTestDiscovery(t)
	h := HandleCalendarDay(svc)

	rec := serve(h, http.MethodGet, "/calendar", "")
	var today dayResponse
	decodeBody(t, rec, &today)
	if today.Date != "2025-03-14" || today.Count != 1 || today.Events[0].ID != "1" {
		t.Fatalf("unexpected today %+v", today)
	}

	rec = serve(h, http.MethodGet, "/calendar?date=2025-03-20", "")
	var day dayResponse
	decodeBody(t, rec, &day)
	if day.Date != "2025-03-20" || day.Count != 1 || day.Events[0].ID != "3" {
		t.Fatalf("unexpected day %+v", day)
	}

	rec = serve(h, http.MethodGet, "/calendar?date=2025-03-17", "")
	var empty dayResponse
	decodeBody(t, rec, &empty)
	if empty.Count != 0 || empty.Events == nil {
		t.Fatalf("expected empty non-nil events, got %+v", empty)
	}

	expectError(t, serve(h, http.MethodGet, "/calendar?date=14/03/2025", ""), http.StatusBadRequest, codeInvalidDate)
}

func TestHandleCalendarDays(t *testing.T) {
	t.Parallel()

	svc, _ := newTestDiscovery(t)
	h := HandleCalendarDays(svc)

	rec := serve(h, http.MethodGet, "/calendar/days?from=2025-03-15&to=2025-03-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var days []dayResponse
	decodeBody(t, rec, &days)
	if len(days) != 2 || days[0].Date != "2025-03-15" || days[1].Date != "2025-03-20" {
		t.Fatalf("unexpected days %+v", days)
	}

	expectError(t, serve(h, http.MethodGet, "/calendar/days?from=2025-03-20&to=2025-03-01", ""), http.StatusBadRequest, codeInvalidDate)
	expectError(t, serve(h, http.MethodGet, "/calendar/days?from=soon", ""), http.StatusBadRequest, codeInvalidDate)
}

func TestHandleCalendarFeed(t *testing.T) {
	t.Parallel()

	svc, _ := newTestDiscovery(t)
	rec := serve(HandleCalendarFeed(svc, FeedOptions{Name: "SA Events", BaseURL: "https://events.example"}), http.MethodGet, "/calendar.ics", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("unexpected content type %q", ct)
	}
	cal, err := ical.ParseCalendar(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	if n := len(cal.Events()); n != 3 {
		t.Fatalf("expected 3 events in feed, got %d", n)
	}
}
