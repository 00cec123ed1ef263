package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/eventfinder/internal/app"
)

// Recommender ranks upcoming events for a user.
type Recommender interface {
	Recommend(ctx context.Context, in app.RecommendInput) (app.Recommendations, error)
}

// Notifier sends one transactional email.
type Notifier interface {
	Notify(ctx context.Context, in app.NotifyInput) (map[string]any, error)
}

// HandleRecommendations serves POST /recommendations.
func HandleRecommendations(svc Recommender, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		var req app.RecommendInput
		if !decodeJSON(w, r, &req) {
			return
		}
		recs, err := svc.Recommend(r.Context(), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecommendationsResponse(recs, loc))
	}
}

type notifyResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
}

// HandleNotifications serves POST /notifications.
func HandleNotifications(svc Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		var req app.NotifyInput
		if !decodeJSON(w, r, &req) {
			return
		}
		data, err := svc.Notify(r.Context(), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, notifyResponse{Success: true, Data: data})
	}
}
