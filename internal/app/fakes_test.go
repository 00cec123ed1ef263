package app

import (
	"context"
	"sync"
	"time"

	"github.com/cimillas/eventfinder/internal/catalog"
	"github.com/cimillas/eventfinder/internal/domain"
	"github.com/cimillas/eventfinder/internal/llm"
	"github.com/cimillas/eventfinder/internal/mailer"
)

var sast = time.FixedZone("SAST", 2*60*60)

func testEvents() []domain.Event {
	at := func(day, hour int) time.Time { return time.Date(2025, 3, day, hour, 0, 0, 0, sast) }
	end := at(8, 23)
	return []domain.Event{
		{ID: "1", Title: "Jazz Night", Category: "Music", City: "Cape Town", Location: "The Waterfront", StartsAt: at(8, 19), EndsAt: &end, Price: "R150", Featured: true},
		{ID: "2", Title: "Tech Summit", Category: "Technology", City: "Johannesburg", StartsAt: at(5, 9), Price: "R900"},
		{ID: "3", Title: "Park Run", Category: "Sports", City: "Durban", StartsAt: at(9, 7), Price: domain.FreePrice, Featured: true},
		{ID: "4", Title: "Old Fair", Category: "Food", City: "Cape Town", StartsAt: at(1, 10)},
	}
}

func newTestCatalog() *catalog.Store {
	store, err := catalog.New(testEvents())
	if err != nil {
		panic(err)
	}
	return store
}

type fakeRegistrationRepo struct {
	mu            sync.Mutex
	occupancy     map[string]domain.Occupancy
	registrations []domain.Registration
	events        map[string]domain.Event
	txCalls       int
	failIncrement error
}

func newFakeRegistrationRepo(occ ...domain.Occupancy) *fakeRegistrationRepo {
	f := &fakeRegistrationRepo{occupancy: make(map[string]domain.Occupancy), events: make(map[string]domain.Event)}
	for _, o := range occ {
		f.occupancy[o.EventID] = o
	}
	return f
}

func (f *fakeRegistrationRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txCalls++
	snapshot := append([]domain.Registration(nil), f.registrations...)
	occ := make(map[string]domain.Occupancy, len(f.occupancy))
	for k, v := range f.occupancy {
		occ[k] = v
	}
	if err := fn(ctx); err != nil {
		f.registrations = snapshot
		f.occupancy = occ
		return err
	}
	return nil
}

func (f *fakeRegistrationRepo) GetOccupancyForUpdate(ctx context.Context, eventID string) (domain.Occupancy, error) {
	o, ok := f.occupancy[eventID]
	if !ok {
		return domain.Occupancy{}, domain.ErrEventNotFound
	}
	return o, nil
}

func (f *fakeRegistrationRepo) InsertRegistration(ctx context.Context, reg domain.Registration) error {
	for _, r := range f.registrations {
		if r.EventID == reg.EventID && r.UserID == reg.UserID {
			return domain.ErrAlreadyRegistered
		}
	}
	f.registrations = append(f.registrations, reg)
	return nil
}

func (f *fakeRegistrationRepo) IncrementRegisteredCount(ctx context.Context, eventID string) error {
	if f.failIncrement != nil {
		return f.failIncrement
	}
	o := f.occupancy[eventID]
	o.Registered++
	f.occupancy[eventID] = o
	return nil
}

func (f *fakeRegistrationRepo) IsRegistered(ctx context.Context, eventID, userID string) (bool, error) {
	for _, r := range f.registrations {
		if r.EventID == eventID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRegistrationRepo) ListEventsForUser(ctx context.Context, userID string) ([]domain.Event, error) {
	out := []domain.Event{}
	for _, r := range f.registrations {
		if r.UserID == userID {
			out = append(out, f.events[r.EventID])
		}
	}
	return out, nil
}

type fakeEventLookup map[string]domain.Event

func (f fakeEventLookup) GetByID(ctx context.Context, id string) (domain.Event, error) {
	e, ok := f[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return e, nil
}

type fakeConfirmer struct {
	sent []string
	err  error
}

func (f *fakeConfirmer) SendConfirmation(ctx context.Context, to string, event domain.Event) error {
	f.sent = append(f.sent, to+"|"+event.ID)
	return f.err
}

type fakeEventRepo struct {
	created []domain.Event
	err     error
}

func (f *fakeEventRepo) Create(ctx context.Context, event domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, event)
	return nil
}

type fakeCompleter struct {
	configured bool
	answer     string
	err        error
	got        []llm.Message
}

func (f *fakeCompleter) Configured() bool { return f.configured }

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.got = messages
	return f.answer, f.err
}

type fakeSender struct {
	configured bool
	sent       []mailer.Email
	err        error
}

func (f *fakeSender) Configured() bool { return f.configured }

func (f *fakeSender) Send(ctx context.Context, email mailer.Email) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, email)
	return map[string]any{"id": "email-1"}, nil
}
