// Package clock supplies the current instant to services so tests can pin it.
package clock

import "time"

// Clock allows injecting time in services.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

// NewSystem returns a clock backed by time.Now, reported in UTC.
func NewSystem() Clock {
	return Func(func() time.Time { return time.Now().UTC() })
}

// NewFixed returns a clock that always returns the same instant.
func NewFixed(t time.Time) Clock {
	t = t.UTC()
	return Func(func() time.Time { return t })
}

// In reports the instants of c in loc. Calendar days and date buckets read
// their "today" from such a clock.
func In(c Clock, loc *time.Location) Clock {
	if loc == nil {
		return c
	}
	return Func(func() time.Time { return c.Now().In(loc) })
}
