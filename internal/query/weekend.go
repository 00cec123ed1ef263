package query

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// weekendWindowDays is the look-ahead of the weekend bucket, today included.
const weekendWindowDays = 7

// WeekendDays returns the midnights (in loc) of the Saturdays and Sundays among the
// seven days starting with the calendar day of now.
func WeekendDays(now time.Time, loc *time.Location) ([]time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	until := start.AddDate(0, 0, weekendWindowDays-1)

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   start,
		Until:     until,
		Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
	})
	if err != nil {
		return nil, fmt.Errorf("weekend rule: %w", err)
	}
	return r.All(), nil
}
