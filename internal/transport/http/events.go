package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cimillas/eventfinder/internal/app"
	"github.com/cimillas/eventfinder/internal/domain"
	"github.com/cimillas/eventfinder/internal/query"
)

// EventReader is the read side the discovery endpoints need.
type EventReader interface {
	Search(c query.Criteria) []domain.Event
	Get(id string) (domain.Event, error)
	Featured() []domain.Event
	Location() *time.Location
}

// EventCreator writes new events. Nil when no remote store is configured.
type EventCreator interface {
	CreateEvent(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
}

// HandleEvents serves GET /events (filtered listing) and POST /events (create).
func HandleEvents(reader EventReader, creator EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			criteria, code, err := parseCriteria(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, code, err.Error())
				return
			}
			events := reader.Search(criteria)
			writeJSON(w, http.StatusOK, listResponse{
				Events: toEventResponses(events, reader.Location()),
				Total:  len(events),
			})
		case http.MethodPost:
			if creator == nil {
				writeServiceError(w, domain.ErrStoreUnavailable)
				return
			}
			var req createEventRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			in, code, err := req.toInput()
			if err != nil {
				writeError(w, http.StatusBadRequest, code, err.Error())
				return
			}
			event, err := creator.CreateEvent(r.Context(), in)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toEventResponse(event, reader.Location()))
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	}
}

// parseCriteria reads category, city, max_price, q and bucket from the query string.
func parseCriteria(r *http.Request) (query.Criteria, string, error) {
	q := r.URL.Query()
	c := query.Reset()
	if v := strings.TrimSpace(q.Get("category")); v != "" {
		c.Category = v
	}
	if v := strings.TrimSpace(q.Get("city")); v != "" {
		c.City = v
	}
	c.Text = q.Get("q")

	bucket, err := query.ParseBucket(q.Get("bucket"))
	if err != nil {
		return query.Criteria{}, codeInvalidBucket, err
	}
	c.Bucket = bucket

	if raw := strings.TrimSpace(q.Get("max_price")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return query.Criteria{}, codeInvalidMaxPrice, domain.ErrInvalidPrice
		}
		c.MaxPrice = &v
	}
	return c, "", nil
}

type createEventRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	StartsAt         string   `json:"startsAt"`
	EndsAt           string   `json:"endsAt"`
	Location         string   `json:"location"`
	City             string   `json:"city"`
	Category         string   `json:"category"`
	ImageURL         string   `json:"imageUrl"`
	OrganizerName    string   `json:"organizerName"`
	OrganizerEmail   string   `json:"organizerEmail"`
	Price            *float64 `json:"price"`
	SpecialOffer     string   `json:"specialOffer"`
	Capacity         *int     `json:"capacity"`
	Featured         bool     `json:"featured"`
}

func (req createEventRequest) toInput() (app.CreateEventInput, string, error) {
	in := app.CreateEventInput{
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Location:         req.Location,
		City:             req.City,
		Category:         req.Category,
		ImageURL:         req.ImageURL,
		OrganizerName:    req.OrganizerName,
		OrganizerEmail:   req.OrganizerEmail,
		Price:            req.Price,
		SpecialOffer:     req.SpecialOffer,
		Capacity:         req.Capacity,
		Featured:         req.Featured,
	}
	if req.StartsAt != "" {
		t, err := time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			return app.CreateEventInput{}, codeInvalidStartsAt, domain.ErrInvalidDate
		}
		in.StartsAt = t
	}
	if req.EndsAt != "" {
		t, err := time.Parse(time.RFC3339, req.EndsAt)
		if err != nil {
			return app.CreateEventInput{}, codeInvalidDate, domain.ErrInvalidDate
		}
		in.EndsAt = &t
	}
	return in, "", nil
}
