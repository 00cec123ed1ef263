package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/cimillas/eventfinder/internal/clock"
	"github.com/cimillas/eventfinder/internal/domain"
)

type RegistrationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetOccupancyForUpdate(ctx context.Context, eventID string) (domain.Occupancy, error)
	InsertRegistration(ctx context.Context, reg domain.Registration) error
	IncrementRegisteredCount(ctx context.Context, eventID string) error
	IsRegistered(ctx context.Context, eventID, userID string) (bool, error)
	ListEventsForUser(ctx context.Context, userID string) ([]domain.Event, error)
}

type EventLookup interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
}

// Confirmer delivers the registration confirmation email.
type Confirmer interface {
	SendConfirmation(ctx context.Context, to string, event domain.Event) error
}

type RegistrationService struct {
	repo     RegistrationRepository
	events   EventLookup
	notifier Confirmer
	clock    clock.Clock
	logger   *slog.Logger
}

type RegistrationServiceOption func(*RegistrationService)

// WithConfirmations enables confirmation emails for registrations that carry an address.
func WithConfirmations(events EventLookup, notifier Confirmer) RegistrationServiceOption {
	return func(s *RegistrationService) {
		s.events = events
		s.notifier = notifier
	}
}

func WithRegistrationLogger(logger *slog.Logger) RegistrationServiceOption {
	return func(s *RegistrationService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewRegistrationService(repo RegistrationRepository, clk clock.Clock, opts ...RegistrationServiceOption) *RegistrationService {
	svc := &RegistrationService{
		repo:   repo,
		clock:  clk,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type RegisterInput struct {
	EventID string
	UserID  string
	// Email, when set, receives a confirmation after the registration commits.
	Email string
}

// Register signs the user up, enforcing capacity under a row lock.
// A failed confirmation email is logged and does not undo the registration.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (domain.Registration, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	if in.EventID == "" {
		return domain.Registration{}, domain.ErrInvalidID
	}
	if in.UserID == "" {
		return domain.Registration{}, domain.ErrUserRequired
	}

	reg := domain.Registration{
		ID:           uuid.NewString(),
		EventID:      in.EventID,
		UserID:       in.UserID,
		Status:       domain.RegistrationStatusRegistered,
		RegisteredAt: s.clock.Now(),
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		occupancy, err := s.repo.GetOccupancyForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if occupancy.Full() {
			return domain.ErrEventFull
		}
		if err := s.repo.InsertRegistration(txCtx, reg); err != nil {
			return err
		}
		return s.repo.IncrementRegisteredCount(txCtx, in.EventID)
	})
	if err != nil {
		return domain.Registration{}, err
	}

	if in.Email != "" && s.notifier != nil && s.events != nil {
		s.confirm(ctx, in.Email, reg)
	}
	return reg, nil
}

func (s *RegistrationService) confirm(ctx context.Context, to string, reg domain.Registration) {
	event, err := s.events.GetByID(ctx, reg.EventID)
	if err != nil {
		s.logger.Warn("confirmation skipped", "event_id", reg.EventID, "error", err)
		return
	}
	if err := s.notifier.SendConfirmation(ctx, to, event); err != nil {
		s.logger.Warn("confirmation email failed", "event_id", reg.EventID, "registration_id", reg.ID, "error", err)
	}
}

func (s *RegistrationService) IsRegistered(ctx context.Context, eventID, userID string) (bool, error) {
	if eventID == "" {
		return false, domain.ErrInvalidID
	}
	if strings.TrimSpace(userID) == "" {
		return false, domain.ErrUserRequired
	}
	return s.repo.IsRegistered(ctx, eventID, userID)
}

// ListForUser returns the events the user is registered for.
func (s *RegistrationService) ListForUser(ctx context.Context, userID string) ([]domain.Event, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUserRequired
	}
	return s.repo.ListEventsForUser(ctx, userID)
}
