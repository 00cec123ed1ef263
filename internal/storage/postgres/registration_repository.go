package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/eventfinder/internal/domain"
)

// RegistrationRepository stores event sign-ups and the per-event registered counter.
// Joined event rows are mapped with the same options as EventRepository.
type RegistrationRepository struct {
	pool   *pgxpool.Pool
	events *EventRepository
}

func NewRegistrationRepository(pool *pgxpool.Pool, opts ...EventRepositoryOption) *RegistrationRepository {
	return &RegistrationRepository{pool: pool, events: NewEventRepository(pool, opts...)}
}

func (r *RegistrationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetOccupancyForUpdate locks the event row and returns its capacity state.
func (r *RegistrationRepository) GetOccupancyForUpdate(ctx context.Context, eventID string) (domain.Occupancy, error) {
	const query = `
SELECT id, capacity, registered_count, status
FROM events
WHERE id = $1
FOR UPDATE`
	var o domain.Occupancy
	err := conn(ctx, r.pool).QueryRow(ctx, query, eventID).Scan(&o.EventID, &o.Capacity, &o.Registered, &o.Status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Occupancy{}, domain.ErrInvalidID
		}
		if isNoRows(err) {
			return domain.Occupancy{}, domain.ErrEventNotFound
		}
		return domain.Occupancy{}, fmt.Errorf("get occupancy: %w", err)
	}
	if o.Status != domain.EventStatusActive {
		return domain.Occupancy{}, domain.ErrEventNotFound
	}
	return o, nil
}

func (r *RegistrationRepository) InsertRegistration(ctx context.Context, reg domain.Registration) error {
	const stmt = `
INSERT INTO event_registrations (id, event_id, user_id, status, registered_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := conn(ctx, r.pool).Exec(ctx, stmt, reg.ID, reg.EventID, reg.UserID, reg.Status, reg.RegisteredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) IncrementRegisteredCount(ctx context.Context, eventID string) error {
	const stmt = `UPDATE events SET registered_count = registered_count + 1 WHERE id = $1`
	tag, err := conn(ctx, r.pool).Exec(ctx, stmt, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("increment registered count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// IsRegistered reports whether userID holds an active registration for eventID.
func (r *RegistrationRepository) IsRegistered(ctx context.Context, eventID, userID string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM event_registrations
	WHERE event_id = $1 AND user_id = $2 AND status = 'registered'
)`
	var ok bool
	if err := conn(ctx, r.pool).QueryRow(ctx, query, eventID, userID).Scan(&ok); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("is registered: %w", err)
	}
	return ok, nil
}

// ListEventsForUser returns the events userID is registered for, most recent sign-up first.
func (r *RegistrationRepository) ListEventsForUser(ctx context.Context, userID string) ([]domain.Event, error) {
	const query = `
SELECT e.id, e.title, e.description, e.start_date, e.end_date, e.location, e.city, e.category,
	e.image_url, e.organizer_name, e.organizer_image_url, e.organizer_email, e.price::float8 AS price,
	e.special_offer, e.featured, e.capacity, e.registered_count, e.status
FROM event_registrations r
JOIN events e ON e.id = r.event_id
WHERE r.user_id = $1 AND r.status = 'registered'
ORDER BY r.registered_at DESC`
	rows, err := conn(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[eventRow])
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}
	events := make([]domain.Event, 0, len(collected))
	for _, row := range collected {
		events = append(events, row.toDomain(r.events.currency))
	}
	return events, nil
}
