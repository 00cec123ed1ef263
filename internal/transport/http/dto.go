package http

import (
	"time"

	"github.com/cimillas/eventfinder/internal/app"
	"github.com/cimillas/eventfinder/internal/domain"
)

type organizerResponse struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type eventResponse struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"shortDescription"`
	Date             string            `json:"date"`
	StartsAt         time.Time         `json:"startsAt"`
	EndsAt           *time.Time        `json:"endsAt,omitempty"`
	Location         string            `json:"location"`
	City             string            `json:"city"`
	ImageURL         string            `json:"imageUrl"`
	Category         string            `json:"category"`
	Organizer        organizerResponse `json:"organizer"`
	Price            string            `json:"price,omitempty"`
	SpecialOffer     string            `json:"specialOffer,omitempty"`
	Featured         bool              `json:"featured"`
	Capacity         *int              `json:"capacity,omitempty"`
	RegisteredCount  int               `json:"registeredCount"`
}

func toEventResponse(e domain.Event, loc *time.Location) eventResponse {
	return eventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		ShortDescription: e.ShortDescription,
		Date:             domain.ScheduleLabel(e.StartsAt, e.EndsAt, loc),
		StartsAt:         e.StartsAt,
		EndsAt:           e.EndsAt,
		Location:         e.Location,
		City:             e.City,
		ImageURL:         e.ImageURL,
		Category:         e.Category,
		Organizer:        organizerResponse{Name: e.Organizer.Name, ImageURL: e.Organizer.ImageURL},
		Price:            string(e.Price),
		SpecialOffer:     e.SpecialOffer,
		Featured:         e.Featured,
		Capacity:         e.Capacity,
		RegisteredCount:  e.RegisteredCount,
	}
}

func toEventResponses(events []domain.Event, loc *time.Location) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e, loc))
	}
	return out
}

type listResponse struct {
	Events []eventResponse `json:"events"`
	Total  int             `json:"total"`
}

type dayResponse struct {
	Date   string          `json:"date"`
	Count  int             `json:"count"`
	Events []eventResponse `json:"events"`
}

type registrationResponse struct {
	ID           string    `json:"id"`
	EventID      string    `json:"eventId"`
	UserID       string    `json:"userId"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type registrationStatusResponse struct {
	EventID    string `json:"eventId"`
	UserID     string `json:"userId"`
	Registered bool   `json:"registered"`
}

type recommendationResponse struct {
	EventID string        `json:"eventId"`
	Reason  string        `json:"reason"`
	Event   eventResponse `json:"event"`
}

type recommendationsResponse struct {
	Recommendations []recommendationResponse `json:"recommendations"`
	Total           int                      `json:"total"`
}

func toRecommendationsResponse(recs app.Recommendations, loc *time.Location) recommendationsResponse {
	out := recommendationsResponse{Recommendations: make([]recommendationResponse, 0, len(recs.Items)), Total: recs.Total}
	for _, r := range recs.Items {
		out.Recommendations = append(out.Recommendations, recommendationResponse{
			EventID: r.EventID,
			Reason:  r.Reason,
			Event:   toEventResponse(r.Event, loc),
		})
	}
	return out
}
