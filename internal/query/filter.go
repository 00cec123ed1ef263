package query

import (
	"strings"
	"time"

	"github.com/cimillas/eventfinder/internal/domain"
)

// Predicate reports whether an event passes one filter.
type Predicate func(domain.Event) bool

// Apply returns the subsequence of events satisfying every filter in c, preserving order.
// now is the evaluation instant for date buckets, interpreted in loc.
func Apply(events []domain.Event, c Criteria, now time.Time, loc *time.Location) []domain.Event {
	return Filter(events, Predicates(c, now, loc)...)
}

// Predicates builds the conjunctive predicate list for c. Disabled filters are omitted.
func Predicates(c Criteria, now time.Time, loc *time.Location) []Predicate {
	var preds []Predicate
	if !isAll(c.Category) {
		preds = append(preds, ByCategory(c.Category))
	}
	if !isAll(c.City) {
		preds = append(preds, ByCity(c.City))
	}
	if c.MaxPrice != nil {
		preds = append(preds, ByMaxPrice(*c.MaxPrice))
	}
	if strings.TrimSpace(c.Text) != "" {
		preds = append(preds, ByText(c.Text))
	}
	if c.Bucket != BucketNone {
		preds = append(preds, ByBucket(c.Bucket, now, loc))
	}
	return preds
}

// Filter keeps the events that pass all preds. The result is never nil.
func Filter(events []domain.Event, preds ...Predicate) []domain.Event {
	out := make([]domain.Event, 0, len(events))
next:
	for _, e := range events {
		for _, p := range preds {
			if !p(e) {
				continue next
			}
		}
		out = append(out, e)
	}
	return out
}

// ByCategory matches the category exactly.
func ByCategory(category string) Predicate {
	return func(e domain.Event) bool {
		return e.Category == category
	}
}

// ByCity matches the city ignoring case.
func ByCity(city string) Predicate {
	return func(e domain.Event) bool {
		return strings.EqualFold(e.City, city)
	}
}

// ByMaxPrice lets free events through regardless of ceiling and drops absent or unparseable prices.
func ByMaxPrice(ceiling float64) Predicate {
	return func(e domain.Event) bool {
		if e.Price.IsFree() {
			return true
		}
		amount, ok := e.Price.Amount()
		if !ok {
			return false
		}
		return amount <= ceiling
	}
}

// ByText is a case-insensitive substring match over title, short description, location and city.
func ByText(text string) Predicate {
	needle := strings.ToLower(strings.TrimSpace(text))
	return func(e domain.Event) bool {
		if needle == "" {
			return true
		}
		for _, field := range []string{e.Title, e.ShortDescription, e.Location, e.City} {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	}
}

// ByBucket matches the named window relative to now.
func ByBucket(b Bucket, now time.Time, loc *time.Location) Predicate {
	if loc == nil {
		loc = time.UTC
	}
	switch b {
	case BucketToday:
		today := domain.DayKey(now, loc)
		return func(e domain.Event) bool {
			return domain.DayKey(e.StartsAt, loc) == today
		}
	case BucketWeekend:
		weekend, err := WeekendDays(now, loc)
		if err != nil {
			return func(domain.Event) bool { return false }
		}
		days := make(map[string]struct{}, len(weekend))
		for _, d := range weekend {
			days[d.Format(time.DateOnly)] = struct{}{}
		}
		return func(e domain.Event) bool {
			_, ok := days[domain.DayKey(e.StartsAt, loc)]
			return ok
		}
	case BucketFree:
		return func(e domain.Event) bool {
			return e.Price.IsFree()
		}
	default:
		return func(domain.Event) bool { return true }
	}
}
