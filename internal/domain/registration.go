package domain

import "time"

type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
)

// Registration records a user signing up for an event.
type Registration struct {
	ID           string
	UserID       string
	EventID      string
	Status       RegistrationStatus
	RegisteredAt time.Time
}

// Occupancy is the capacity state of an event read while registering.
type Occupancy struct {
	EventID    string
	Capacity   *int
	Registered int
	Status     EventStatus
}

// Full reports whether no seat is left. Events without a capacity never fill up.
func (o Occupancy) Full() bool {
	return o.Capacity != nil && o.Registered >= *o.Capacity
}
