package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/cimillas/eventfinder/internal/domain"
	"github.com/cimillas/eventfinder/internal/icalfeed"
	"github.com/cimillas/eventfinder/internal/query"
)

// CalendarReader is what the calendar endpoints need.
type CalendarReader interface {
	Day(day time.Time) []domain.Event
	Days(from, to time.Time) []query.Day
	All() []domain.Event
	Now() time.Time
	Location() *time.Location
}

// HandleCalendarDay serves GET /calendar?date=YYYY-MM-DD. The date defaults to today.
func HandleCalendarDay(svc CalendarReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		day := svc.Now()
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := parseDay(raw, svc.Location())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			day = parsed
		}
		events := svc.Day(day)
		writeJSON(w, http.StatusOK, dayResponse{
			Date:   domain.DayKey(day, svc.Location()),
			Count:  len(events),
			Events: toEventResponses(events, svc.Location()),
		})
	}
}

// HandleCalendarDays serves GET /calendar/days?from=&to=, listing only days with events.
func HandleCalendarDays(svc CalendarReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		var from, to time.Time
		var err error
		q := r.URL.Query()
		if raw := q.Get("from"); raw != "" {
			if from, err = parseDay(raw, svc.Location()); err != nil {
				writeServiceError(w, err)
				return
			}
		}
		if raw := q.Get("to"); raw != "" {
			if to, err = parseDay(raw, svc.Location()); err != nil {
				writeServiceError(w, err)
				return
			}
		}
		if !from.IsZero() && !to.IsZero() && to.Before(from) {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "to is before from")
			return
		}

		days := svc.Days(from, to)
		resp := make([]dayResponse, 0, len(days))
		for _, d := range days {
			resp = append(resp, dayResponse{Date: d.Date, Count: len(d.Events), Events: toEventResponses(d.Events, svc.Location())})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// FeedOptions configures the iCalendar export.
type FeedOptions struct {
	Name    string
	BaseURL string
}

// HandleCalendarFeed serves GET /calendar.ics with the whole catalog.
func HandleCalendarFeed(svc CalendarReader, opts FeedOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		body := icalfeed.Render(svc.All(), icalfeed.Options{
			Name:    opts.Name,
			BaseURL: opts.BaseURL,
			Stamp:   svc.Now(),
		})
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `inline; filename="events.ics"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}

func parseDay(raw string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}
