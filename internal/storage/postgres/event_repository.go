package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/eventfinder/internal/domain"
)

const (
	tableEvents       = "events"
	colID             = "id"
	colTitle          = "title"
	colDescription    = "description"
	colStartDate      = "start_date"
	colEndDate        = "end_date"
	colLocation       = "location"
	colCity           = "city"
	colCategory       = "category"
	colImageURL       = "image_url"
	colOrganizerName  = "organizer_name"
	colOrganizerImage = "organizer_image_url"
	colOrganizerEmail = "organizer_email"
	colPrice          = "price"
	colSpecialOffer   = "special_offer"
	colFeatured       = "featured"
	colCapacity       = "capacity"
	colRegistered     = "registered_count"
	colStatus         = "status"
	colCreatedAt      = "created_at"
)

var dialect = goqu.Dialect("postgres")

var eventColumns = []any{
	colID, colTitle, colDescription, colStartDate, colEndDate, colLocation, colCity, colCategory,
	colImageURL, colOrganizerName, colOrganizerImage, colOrganizerEmail,
	goqu.L(colPrice + "::float8").As(colPrice),
	colSpecialOffer, colFeatured, colCapacity, colRegistered, colStatus,
}

type eventRow struct {
	ID             string     `db:"id"`
	Title          string     `db:"title"`
	Description    string     `db:"description"`
	StartDate      time.Time  `db:"start_date"`
	EndDate        *time.Time `db:"end_date"`
	Location       string     `db:"location"`
	City           string     `db:"city"`
	Category       string     `db:"category"`
	ImageURL       string     `db:"image_url"`
	OrganizerName  string     `db:"organizer_name"`
	OrganizerImage string     `db:"organizer_image_url"`
	OrganizerEmail string     `db:"organizer_email"`
	Price          *float64   `db:"price"`
	SpecialOffer   string     `db:"special_offer"`
	Featured       bool       `db:"featured"`
	Capacity       *int       `db:"capacity"`
	Registered     int        `db:"registered_count"`
	Status         string     `db:"status"`
}

func (r eventRow) toDomain(currency string) domain.Event {
	return domain.Event{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		ShortDescription: domain.Summarize(r.Description, domain.ShortDescriptionLimit),
		StartsAt:         r.StartDate,
		EndsAt:           r.EndDate,
		Location:         r.Location,
		City:             r.City,
		ImageURL:         r.ImageURL,
		Category:         r.Category,
		Organizer: domain.Organizer{
			Name:     r.OrganizerName,
			ImageURL: r.OrganizerImage,
			Email:    r.OrganizerEmail,
		},
		Price:           domain.PriceFromAmount(r.Price, currency),
		SpecialOffer:    r.SpecialOffer,
		Featured:        r.Featured,
		Capacity:        r.Capacity,
		RegisteredCount: r.Registered,
		Status:          domain.EventStatus(r.Status),
	}
}

// EventRepository reads and writes the events table. Only active events are ever returned.
type EventRepository struct {
	pool     *pgxpool.Pool
	currency string
}

type EventRepositoryOption func(*EventRepository)

// WithCurrency sets the symbol prefixed to numeric prices. Defaults to "R".
func WithCurrency(symbol string) EventRepositoryOption {
	return func(r *EventRepository) {
		r.currency = symbol
	}
}

func NewEventRepository(pool *pgxpool.Pool, opts ...EventRepositoryOption) *EventRepository {
	r := &EventRepository{pool: pool, currency: "R"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ListActive returns every active event ordered by start.
func (r *EventRepository) ListActive(ctx context.Context) ([]domain.Event, error) {
	return r.list(ctx, "list active events", 0)
}

// ListByCategory returns active events of one category. The All sentinel returns every active event.
func (r *EventRepository) ListByCategory(ctx context.Context, category string) ([]domain.Event, error) {
	if category == domain.AllSentinel {
		return r.ListActive(ctx)
	}
	return r.list(ctx, "list events by category", 0, goqu.C(colCategory).Eq(category))
}

// ListByCity returns active events in one city. The All sentinel returns every active event.
func (r *EventRepository) ListByCity(ctx context.Context, city string) ([]domain.Event, error) {
	if city == domain.AllSentinel {
		return r.ListActive(ctx)
	}
	return r.list(ctx, "list events by city", 0, goqu.C(colCity).Eq(city))
}

// ListUpcoming returns active events starting at or after now. limit <= 0 means no limit.
func (r *EventRepository) ListUpcoming(ctx context.Context, now time.Time, limit int) ([]domain.Event, error) {
	return r.list(ctx, "list upcoming events", limit, goqu.C(colStartDate).Gte(now))
}

// GetByID returns one active event.
func (r *EventRepository) GetByID(ctx context.Context, id string) (domain.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Event{}, domain.ErrInvalidID
	}
	events, err := r.list(ctx, "get event", 1, goqu.C(colID).Eq(id))
	if err != nil {
		return domain.Event{}, err
	}
	if len(events) == 0 {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return events[0], nil
}

// GetByIDs returns the active events among ids. Malformed and unknown ids are skipped.
func (r *EventRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Event, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []domain.Event{}, nil
	}
	return r.list(ctx, "get events", 0, goqu.C(colID).In(valid))
}

// Create inserts a new event row. Price "" is stored as NULL and Free as 0.
func (r *EventRepository) Create(ctx context.Context, event domain.Event) error {
	status := event.Status
	if status == "" {
		status = domain.EventStatusActive
	}
	ds := dialect.Insert(tableEvents).Prepared(true).Rows(goqu.Record{
		colID:             event.ID,
		colTitle:          event.Title,
		colDescription:    event.Description,
		colStartDate:      event.StartsAt,
		colEndDate:        nullableTime(event.EndsAt),
		colLocation:       event.Location,
		colCity:           event.City,
		colCategory:       event.Category,
		colImageURL:       event.ImageURL,
		colOrganizerName:  event.Organizer.Name,
		colOrganizerImage: event.Organizer.ImageURL,
		colOrganizerEmail: event.Organizer.Email,
		colPrice:          priceAmount(event.Price),
		colSpecialOffer:   event.SpecialOffer,
		colFeatured:       event.Featured,
		colCapacity:       nullableInt(event.Capacity),
		colStatus:         string(status),
	})
	sql, args, err := ds.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert event: %w", err)
	}
	if _, err := conn(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEventID
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) list(ctx context.Context, op string, limit int, where ...exp.Expression) ([]domain.Event, error) {
	conds := append([]exp.Expression{goqu.C(colStatus).Eq(string(domain.EventStatusActive))}, where...)
	ds := dialect.From(tableEvents).Prepared(true).
		Select(eventColumns...).
		Where(conds...).
		Order(goqu.C(colStartDate).Asc(), goqu.C(colCreatedAt).Asc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	sql, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}

	rows, err := conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[eventRow])
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events := make([]domain.Event, 0, len(collected))
	for _, row := range collected {
		events = append(events, row.toDomain(r.currency))
	}
	return events, nil
}

func priceAmount(p domain.Price) any {
	if !p.IsSet() {
		return nil
	}
	if p.IsFree() {
		return 0.0
	}
	v, ok := p.Amount()
	if !ok {
		return nil
	}
	return v
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullableInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
