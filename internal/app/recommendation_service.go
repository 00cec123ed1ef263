package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/cimillas/eventfinder/internal/clock"
	"github.com/cimillas/eventfinder/internal/domain"
	"github.com/cimillas/eventfinder/internal/llm"
	"github.com/cimillas/eventfinder/internal/query"
)

// EventSource is what recommendations are drawn from.
type EventSource interface {
	ListUpcoming(ctx context.Context, now time.Time, limit int) ([]domain.Event, error)
	ListByCity(ctx context.Context, city string) ([]domain.Event, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Event, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Event, error)
}

type Completer interface {
	Configured() bool
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

const (
	maxCandidates       = 50
	candidateDescLimit  = 200
	recommendationCount = 5
	systemPrompt        = "You are an expert event recommendation system for South African events. Respond only with valid JSON."
)

type RecommendationService struct {
	events    EventSource
	completer Completer
	clock     clock.Clock
	logger    *slog.Logger
}

func NewRecommendationService(events EventSource, completer Completer, clk clock.Clock, logger *slog.Logger) *RecommendationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecommendationService{events: events, completer: completer, clock: clk, logger: logger}
}

type RecommendInput struct {
	UserID     string   `json:"userId" validate:"required"`
	Location   string   `json:"location"`
	Interests  []string `json:"interests"`
	PastEvents []string `json:"pastEvents"`
}

type Recommendation struct {
	EventID string
	Reason  string
	Event   domain.Event
}

type Recommendations struct {
	Items []Recommendation
	Total int
}

type candidate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	City        string `json:"city"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type suggestion struct {
	EventID string `json:"eventId"`
	Reason  string `json:"reason"`
}

// Recommend asks the model to pick upcoming events for the user profile and joins
// the answer back onto stored events. Suggestions naming unknown events are dropped.
func (s *RecommendationService) Recommend(ctx context.Context, in RecommendInput) (Recommendations, error) {
	if s.completer == nil || !s.completer.Configured() {
		return Recommendations{}, domain.ErrRecommenderNotConfigured
	}
	if err := validateInput(in, map[string]error{"UserID": domain.ErrUserRequired}); err != nil {
		return Recommendations{}, err
	}

	candidates, err := s.candidates(ctx, in, s.clock.Now())
	if err != nil {
		return Recommendations{}, err
	}

	prompt, err := buildPrompt(in, candidates)
	if err != nil {
		return Recommendations{}, err
	}
	answer, err := s.completer.Complete(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.logger.Warn("recommendation completion failed", "user_id", in.UserID, "error", err)
		return Recommendations{}, fmt.Errorf("complete recommendations: %w", err)
	}

	suggestions, err := parseSuggestions(answer)
	if err != nil {
		s.logger.Warn("unparseable recommendation answer", "user_id", in.UserID, "error", err)
		return Recommendations{}, err
	}

	ids := make([]string, 0, len(suggestions))
	for _, sg := range suggestions {
		ids = append(ids, sg.EventID)
	}
	found, err := s.events.GetByIDs(ctx, ids)
	if err != nil {
		return Recommendations{}, fmt.Errorf("load recommended events: %w", err)
	}
	byID := make(map[string]domain.Event, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}

	items := make([]Recommendation, 0, len(suggestions))
	for _, sg := range suggestions {
		event, ok := byID[sg.EventID]
		if !ok {
			continue
		}
		items = append(items, Recommendation{EventID: sg.EventID, Reason: sg.Reason, Event: event})
	}
	return Recommendations{Items: items, Total: len(items)}, nil
}

// candidates lists upcoming events in the user's city first, then in the
// categories named by their interests, then everything else upcoming, capped
// at maxCandidates.
func (s *RecommendationService) candidates(ctx context.Context, in RecommendInput, now time.Time) ([]domain.Event, error) {
	var preferred []domain.Event
	if city := strings.TrimSpace(in.Location); city != "" {
		events, err := s.events.ListByCity(ctx, city)
		if err != nil {
			return nil, fmt.Errorf("list events in %s: %w", city, err)
		}
		preferred = append(preferred, events...)
	}
	for _, interest := range in.Interests {
		interest = strings.TrimSpace(interest)
		if interest == "" || interest == domain.AllSentinel {
			continue
		}
		events, err := s.events.ListByCategory(ctx, interest)
		if err != nil {
			return nil, fmt.Errorf("list %s events: %w", interest, err)
		}
		preferred = append(preferred, events...)
	}

	upcoming, err := s.events.ListUpcoming(ctx, now, maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}

	out := make([]domain.Event, 0, maxCandidates)
	seen := make(map[string]struct{})
	for _, e := range append(preferred, upcoming...) {
		if len(out) == maxCandidates {
			break
		}
		if e.StartsAt.Before(now) {
			continue
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out, nil
}

func buildPrompt(in RecommendInput, events []domain.Event) (string, error) {
	candidates := make([]candidate, 0, len(events))
	for _, e := range events {
		desc := e.Description
		if r := []rune(desc); len(r) > candidateDescLimit {
			desc = string(r[:candidateDescLimit])
		}
		candidates = append(candidates, candidate{
			ID:          e.ID,
			Title:       e.Title,
			Category:    e.Category,
			City:        e.City,
			Description: desc,
			Date:        e.StartsAt.UTC().Format(time.RFC3339),
		})
	}
	catalog, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode candidates: %w", err)
	}

	var b strings.Builder
	b.WriteString("As an event recommendation assistant for South African events, analyze the following.\n\n")
	b.WriteString("User profile:\n")
	fmt.Fprintf(&b, "- Location: %s\n", orDefault(in.Location, "Not specified"))
	fmt.Fprintf(&b, "- Interests: %s\n", orDefault(strings.Join(in.Interests, ", "), "Not specified"))
	fmt.Fprintf(&b, "- Past events: %s\n\n", orDefault(strings.Join(in.PastEvents, ", "), "None"))
	b.WriteString("Available events:\n")
	b.Write(catalog)
	fmt.Fprintf(&b, "\n\nRecommend the top %d most relevant events for this user. Consider:\n", recommendationCount)
	b.WriteString("1. Geographic proximity to the user's location\n")
	b.WriteString("2. Alignment with the user's stated interests\n")
	b.WriteString("3. Diversity of recommendations\n")
	b.WriteString("4. Past event preferences\n\n")
	b.WriteString("Respond with a JSON array of objects with \"eventId\" and a brief \"reason\".")
	return b.String(), nil
}

// parseSuggestions accepts a bare JSON array, optionally wrapped in a markdown code fence.
func parseSuggestions(answer string) ([]suggestion, error) {
	text := strings.TrimSpace(answer)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	var out []suggestion
	if err := jsoniter.ConfigFastest.UnmarshalFromString(strings.TrimSpace(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRecommendation, err)
	}
	return out, nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// CatalogSource serves EventSource from the in-memory catalog.
type CatalogSource struct {
	Catalog Catalog
}

func (c CatalogSource) ListUpcoming(_ context.Context, now time.Time, limit int) ([]domain.Event, error) {
	out := make([]domain.Event, 0)
	for _, e := range c.Catalog.ListAll() {
		if e.StartsAt.Before(now) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (c CatalogSource) ListByCity(_ context.Context, city string) ([]domain.Event, error) {
	return query.Filter(c.Catalog.ListAll(), query.ByCity(city)), nil
}

func (c CatalogSource) ListByCategory(_ context.Context, category string) ([]domain.Event, error) {
	return query.Filter(c.Catalog.ListAll(), query.ByCategory(category)), nil
}

func (c CatalogSource) GetByIDs(_ context.Context, ids []string) ([]domain.Event, error) {
	return c.Catalog.GetMany(ids), nil
}
