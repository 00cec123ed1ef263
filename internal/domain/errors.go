package domain

import "errors"

var (
	ErrEventNotFound            = errors.New("event not found")
	ErrInvalidID                = errors.New("invalid id")
	ErrDuplicateEventID         = errors.New("duplicate event id")
	ErrEventTitleRequired       = errors.New("event title required")
	ErrStartRequired            = errors.New("event start required")
	ErrInvalidSchedule          = errors.New("event ends before it starts")
	ErrInvalidPrice             = errors.New("invalid price")
	ErrInvalidCapacity          = errors.New("invalid capacity")
	ErrInvalidBucket            = errors.New("invalid date bucket")
	ErrInvalidDate              = errors.New("invalid date")
	ErrUserRequired             = errors.New("user id required")
	ErrAlreadyRegistered        = errors.New("already registered")
	ErrEventFull                = errors.New("event is full")
	ErrRecommenderNotConfigured = errors.New("recommendation service not configured")
	ErrInvalidRecommendation    = errors.New("invalid recommendation response")
	ErrMailerNotConfigured      = errors.New("email service not configured")
	ErrRecipientRequired        = errors.New("recipient required")
	ErrInvalidInput             = errors.New("invalid input")
	ErrStoreUnavailable         = errors.New("remote event store not configured")
)
