// Package query composes the listing filters over a sequence of events.
package query

import (
	"strings"

	"github.com/cimillas/eventfinder/internal/domain"
)

// Bucket is a named coarse time-window (or price) shortcut.
type Bucket string

const (
	BucketNone    Bucket = ""
	BucketToday   Bucket = "today"
	BucketWeekend Bucket = "weekend"
	BucketFree    Bucket = "free"
)

// ParseBucket maps a user supplied tag onto a Bucket. "" and "all" mean no bucket.
func ParseBucket(tag string) (Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "", "all":
		return BucketNone, nil
	case "today":
		return BucketToday, nil
	case "weekend", "this-weekend":
		return BucketWeekend, nil
	case "free":
		return BucketFree, nil
	default:
		return BucketNone, domain.ErrInvalidBucket
	}
}

// Criteria is the caller-owned filter state. Zero value matches everything.
type Criteria struct {
	Category string
	City     string
	MaxPrice *float64
	Text     string
	Bucket   Bucket
}

// Reset returns criteria with every filter disabled.
func Reset() Criteria {
	return Criteria{Category: domain.AllSentinel, City: domain.AllSentinel}
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == domain.AllSentinel
}
