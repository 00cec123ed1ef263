package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cimillas/eventfinder/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) error
}

// EventService writes new events to the remote store.
type EventService struct {
	repo      EventRepository
	currency  string
	onCreated func(ctx context.Context, event domain.Event)
}

type EventServiceOption func(*EventService)

// WithCreatedHook runs fn after an event has been stored, e.g. to publish it
// to the in-memory catalog ahead of the next refresh.
func WithCreatedHook(fn func(ctx context.Context, event domain.Event)) EventServiceOption {
	return func(s *EventService) {
		s.onCreated = fn
	}
}

// NewEventService stores numeric prices prefixed with currency.
func NewEventService(repo EventRepository, currency string, opts ...EventServiceOption) *EventService {
	svc := &EventService{repo: repo, currency: currency}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CreateEventInput struct {
	Title            string     `validate:"required,max=200"`
	Description      string     `validate:"max=5000"`
	ShortDescription string     `validate:"max=300"`
	StartsAt         time.Time  `validate:"required"`
	EndsAt           *time.Time `validate:"omitempty"`
	Location         string     `validate:"required,max=200"`
	City             string     `validate:"required,max=100"`
	Category         string     `validate:"required,max=100"`
	ImageURL         string     `validate:"omitempty,url"`
	OrganizerName    string     `validate:"required,max=200"`
	OrganizerEmail   string     `validate:"omitempty,email"`
	Price            *float64   `validate:"omitempty,gte=0"`
	SpecialOffer     string     `validate:"max=200"`
	Capacity         *int       `validate:"omitempty,gt=0"`
	Featured         bool
}

var createEventFieldErrs = map[string]error{
	"Title":    domain.ErrEventTitleRequired,
	"StartsAt": domain.ErrStartRequired,
	"Price":    domain.ErrInvalidPrice,
	"Capacity": domain.ErrInvalidCapacity,
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(in, createEventFieldErrs); err != nil {
		return domain.Event{}, err
	}

	short := strings.TrimSpace(in.ShortDescription)
	if short == "" {
		short = domain.Summarize(in.Description, domain.ShortDescriptionLimit)
	}
	event := domain.Event{
		ID:               uuid.NewString(),
		Title:            in.Title,
		Description:      in.Description,
		ShortDescription: short,
		StartsAt:         in.StartsAt.UTC(),
		EndsAt:           in.EndsAt,
		Location:         in.Location,
		City:             in.City,
		ImageURL:         in.ImageURL,
		Category:         in.Category,
		Organizer:        domain.Organizer{Name: in.OrganizerName, Email: in.OrganizerEmail},
		Price:            domain.PriceFromAmount(in.Price, s.currency),
		SpecialOffer:     in.SpecialOffer,
		Featured:         in.Featured,
		Capacity:         in.Capacity,
		Status:           domain.EventStatusActive,
	}
	if err := event.Validate(); err != nil {
		return domain.Event{}, err
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return domain.Event{}, err
	}
	if s.onCreated != nil {
		s.onCreated(ctx, event)
	}
	return event, nil
}
