package query

import (
	"sort"
	"time"

	"github.com/cimillas/eventfinder/internal/domain"
)

// Day is one calendar cell: the events starting on Date.
type Day struct {
	Date   string
	Events []domain.Event
}

// GroupByDay indexes events by the calendar day they start on in loc.
func GroupByDay(events []domain.Event, loc *time.Location) map[string][]domain.Event {
	out := make(map[string][]domain.Event)
	for _, e := range events {
		key := domain.DayKey(e.StartsAt, loc)
		out[key] = append(out[key], e)
	}
	return out
}

// EventsOn returns the events starting on the calendar day of day, in input order.
func EventsOn(events []domain.Event, day time.Time, loc *time.Location) []domain.Event {
	key := domain.DayKey(day, loc)
	return Filter(events, func(e domain.Event) bool {
		return domain.DayKey(e.StartsAt, loc) == key
	})
}

// DaysWithEvents lists the days in [from, to] that have at least one event, ascending.
// A zero from or to leaves that side open.
func DaysWithEvents(events []domain.Event, from, to time.Time, loc *time.Location) []Day {
	fromKey, toKey := "", ""
	if !from.IsZero() {
		fromKey = domain.DayKey(from, loc)
	}
	if !to.IsZero() {
		toKey = domain.DayKey(to, loc)
	}

	grouped := GroupByDay(events, loc)
	days := make([]Day, 0, len(grouped))
	for key, evs := range grouped {
		if fromKey != "" && key < fromKey {
			continue
		}
		if toKey != "" && key > toKey {
			continue
		}
		days = append(days, Day{Date: key, Events: evs})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
