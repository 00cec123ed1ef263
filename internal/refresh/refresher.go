// Package refresh keeps the in-memory catalog in step with the remote event store.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cimillas/eventfinder/internal/domain"
)

// Source lists the events that should make up the catalog.
type Source interface {
	ListActive(ctx context.Context) ([]domain.Event, error)
}

// Target receives each fresh snapshot.
type Target interface {
	Replace(events []domain.Event) error
}

// Refresher periodically copies Source into Target. A failed run keeps the previous snapshot.
type Refresher struct {
	source  Source
	target  Target
	logger  *slog.Logger
	timeout time.Duration
	loc     *time.Location

	mu      sync.Mutex
	cron    *cron.Cron
	lastRun time.Time
	lastErr error
}

type Option func(*Refresher)

// WithTimeout bounds a single run. Defaults to 15s.
func WithTimeout(d time.Duration) Option {
	return func(r *Refresher) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLocation sets the zone cron expressions are evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(r *Refresher) {
		if loc != nil {
			r.loc = loc
		}
	}
}

func New(source Source, target Target, logger *slog.Logger, opts ...Option) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Refresher{
		source:  source,
		target:  target,
		logger:  logger,
		timeout: 15 * time.Second,
		loc:     time.UTC,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOnce loads the source and swaps it into the target.
func (r *Refresher) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	events, err := r.source.ListActive(ctx)
	if err == nil {
		err = r.target.Replace(events)
	}

	r.mu.Lock()
	r.lastRun = start
	r.lastErr = err
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("catalog refresh failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("refresh catalog: %w", err)
	}
	r.logger.Info("catalog refreshed", "events", len(events), "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Start schedules RunOnce on expr, a standard five-field cron expression.
func (r *Refresher) Start(expr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		return fmt.Errorf("refresher already started")
	}

	c := cron.New(cron.WithLocation(r.loc))
	if _, err := c.AddFunc(expr, func() {
		_ = r.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", expr, err)
	}
	c.Start()
	r.cron = c
	r.logger.Info("catalog refresh scheduled", "expr", expr)
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish or ctx to expire.
func (r *Refresher) Stop(ctx context.Context) {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()
	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}
}

// Status reports the start time and outcome of the latest run.
func (r *Refresher) Status() (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun, r.lastErr
}
