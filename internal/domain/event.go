package domain

import (
	"strconv"
	"strings"
	"time"
)

// FreePrice is the sentinel price of events that cost nothing.
const FreePrice Price = "Free"

// AllSentinel disables the category and city filters.
const AllSentinel = "All"

type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
)

// Organizer is the party running an event.
type Organizer struct {
	Name     string
	ImageURL string
	Email    string
}

// Event represents a single listed occurrence with schedule, location and pricing metadata.
type Event struct {
	ID               string
	Title            string
	Description      string
	ShortDescription string
	StartsAt         time.Time
	EndsAt           *time.Time
	Location         string
	City             string
	ImageURL         string
	Category         string
	Organizer        Organizer
	Price            Price
	SpecialOffer     string
	Featured         bool

	// Remote store bookkeeping; zero for seed events.
	Capacity        *int
	RegisteredCount int
	Status          EventStatus
}

// Validate checks the record invariants every stored event must satisfy.
func (e Event) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrInvalidID
	}
	if e.StartsAt.IsZero() {
		return ErrStartRequired
	}
	if e.EndsAt != nil && e.EndsAt.Before(e.StartsAt) {
		return ErrInvalidSchedule
	}
	if !e.Price.Valid() {
		return ErrInvalidPrice
	}
	return nil
}

// Price is either absent (""), the Free sentinel or a currency-prefixed number such as "R150".
type Price string

// IsSet reports whether the event carries a price at all.
func (p Price) IsSet() bool {
	return p != ""
}

// IsFree reports whether the price is exactly the Free sentinel.
func (p Price) IsFree() bool {
	return p == FreePrice
}

// Amount strips every character that is not a digit or a dot and parses the remainder.
// The Free sentinel and absent prices have no amount.
func (p Price) Amount() (float64, bool) {
	if !p.IsSet() || p.IsFree() {
		return 0, false
	}
	var b strings.Builder
	for _, r := range string(p) {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Valid reports whether the price is absent, free or parses to a non-negative amount.
func (p Price) Valid() bool {
	if !p.IsSet() || p.IsFree() {
		return true
	}
	v, ok := p.Amount()
	return ok && v >= 0
}

// PriceFromAmount maps a numeric remote-store price onto the string form.
func PriceFromAmount(amount *float64, currency string) Price {
	if amount == nil {
		return ""
	}
	if *amount <= 0 {
		return FreePrice
	}
	return Price(currency + strconv.FormatFloat(*amount, 'f', -1, 64))
}
