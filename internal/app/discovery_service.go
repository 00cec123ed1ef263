package app

import (
	"time"

	"github.com/cimillas/eventfinder/internal/clock"
	"github.com/cimillas/eventfinder/internal/domain"
	"github.com/cimillas/eventfinder/internal/query"
)

// Catalog is the in-memory event snapshot the read side works on.
type Catalog interface {
	ListAll() []domain.Event
	GetByID(id string) (domain.Event, error)
	GetMany(ids []string) []domain.Event
	ListFeatured() []domain.Event
	ListCategories() []string
	ListCities() []string
}

// DiscoveryService answers listing, detail and calendar reads from the catalog.
type DiscoveryService struct {
	catalog Catalog
	clock   clock.Clock
	loc     *time.Location
}

type DiscoveryServiceOption func(*DiscoveryService)

// WithLocation sets the zone calendar days and date buckets are evaluated in.
func WithLocation(loc *time.Location) DiscoveryServiceOption {
	return func(s *DiscoveryService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewDiscoveryService(cat Catalog, clk clock.Clock, opts ...DiscoveryServiceOption) *DiscoveryService {
	svc := &DiscoveryService{
		catalog: cat,
		clock:   clk,
		loc:     time.UTC,
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.clock = clock.In(clk, svc.loc)
	return svc
}

func (s *DiscoveryService) Location() *time.Location {
	return s.loc
}

// Now is the evaluation instant used for date buckets.
func (s *DiscoveryService) Now() time.Time {
	return s.clock.Now()
}

// Search applies every active criterion to the catalog, keeping catalog order.
func (s *DiscoveryService) Search(c query.Criteria) []domain.Event {
	return query.Apply(s.catalog.ListAll(), c, s.Now(), s.loc)
}

func (s *DiscoveryService) Get(id string) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}
	return s.catalog.GetByID(id)
}

func (s *DiscoveryService) Featured() []domain.Event {
	return s.catalog.ListFeatured()
}

func (s *DiscoveryService) Categories() []string {
	return s.catalog.ListCategories()
}

func (s *DiscoveryService) Cities() []string {
	return s.catalog.ListCities()
}

// Day returns the events starting on the calendar day of day.
func (s *DiscoveryService) Day(day time.Time) []domain.Event {
	return query.EventsOn(s.catalog.ListAll(), day, s.loc)
}

// Days lists the days in [from, to] that have events. Zero bounds are open.
func (s *DiscoveryService) Days(from, to time.Time) []query.Day {
	return query.DaysWithEvents(s.catalog.ListAll(), from, to, s.loc)
}

// All returns the whole catalog, e.g. for the calendar feed.
func (s *DiscoveryService) All() []domain.Event {
	return s.catalog.ListAll()
}
