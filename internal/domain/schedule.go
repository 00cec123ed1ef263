package domain

import (
	"strings"
	"time"
)

const (
	dayLayout  = "Jan 2, 2006"
	timeLayout = "3:04 PM"
)

// ScheduleLabel renders the human readable date line shown on cards and detail pages.
func ScheduleLabel(start time.Time, end *time.Time, loc *time.Location) string {
	if loc != nil {
		start = start.In(loc)
	}
	if end == nil {
		return start.Format(dayLayout) + " · " + start.Format(timeLayout)
	}
	e := *end
	if loc != nil {
		e = e.In(loc)
	}
	if SameDay(start, e) {
		return start.Format(dayLayout) + " · " + start.Format(timeLayout) + " - " + e.Format(timeLayout)
	}
	return start.Format(dayLayout) + " - " + e.Format(dayLayout)
}

// SameDay compares calendar days of two instants in their own locations.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayKey is the calendar grouping key of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(time.DateOnly)
}

// ShortDescriptionLimit caps derived short descriptions, in runes.
const ShortDescriptionLimit = 120

// Summarize derives a card blurb from a long description: the first sentence,
// cut at a word boundary and suffixed with "..." when longer than limit runes.
func Summarize(description string, limit int) string {
	text := strings.Join(strings.Fields(description), " ")
	if i := strings.Index(text, ". "); i >= 0 {
		text = text[:i+1]
	}
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	cut := string(runes[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}
