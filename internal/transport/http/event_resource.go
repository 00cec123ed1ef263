package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/cimillas/eventfinder/internal/app"
	"github.com/cimillas/eventfinder/internal/domain"
)

// Registrar manages registrations. Nil when no remote store is configured.
type Registrar interface {
	Register(ctx context.Context, in app.RegisterInput) (domain.Registration, error)
	IsRegistered(ctx context.Context, eventID, userID string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Event, error)
}

// HandleEventResource serves the /events/ subtree:
//
//	GET  /events/featured
//	GET  /events/{id}
//	POST /events/{id}/registrations
//	GET  /events/{id}/registrations/{userID}
func HandleEventResource(reader EventReader, registrar Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts, ok := splitPath(r.URL.Path, "events")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch {
		case len(parts) == 1 && parts[0] == "featured":
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			events := reader.Featured()
			writeJSON(w, http.StatusOK, listResponse{Events: toEventResponses(events, reader.Location()), Total: len(events)})
		case len(parts) == 1:
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			event, err := reader.Get(parts[0])
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toEventResponse(event, reader.Location()))
		case len(parts) == 2 && parts[1] == "registrations":
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			handleRegister(w, r, registrar, parts[0])
		case len(parts) == 3 && parts[1] == "registrations":
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			handleRegistrationStatus(w, r, registrar, parts[0], parts[2])
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

type registerRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func handleRegister(w http.ResponseWriter, r *http.Request, registrar Registrar, eventID string) {
	if registrar == nil {
		writeServiceError(w, domain.ErrStoreUnavailable)
		return
	}
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reg, err := registrar.Register(r.Context(), app.RegisterInput{
		EventID: eventID,
		UserID:  req.UserID,
		Email:   strings.TrimSpace(req.Email),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registrationResponse{
		ID:           reg.ID,
		EventID:      reg.EventID,
		UserID:       reg.UserID,
		Status:       string(reg.Status),
		RegisteredAt: reg.RegisteredAt,
	})
}

func handleRegistrationStatus(w http.ResponseWriter, r *http.Request, registrar Registrar, eventID, userID string) {
	if registrar == nil {
		writeServiceError(w, domain.ErrStoreUnavailable)
		return
	}
	ok, err := registrar.IsRegistered(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, registrationStatusResponse{EventID: eventID, UserID: userID, Registered: ok})
}

// splitPath returns the non-empty segments after /{root}/. Empty segments are rejected.
func splitPath(path, root string) ([]string, bool) {
	rest, ok := strings.CutPrefix(strings.Trim(path, "/"), root+"/")
	if !ok || rest == "" {
		return nil, false
	}
	parts := strings.Split(rest, "/")
	for _, p := range parts {
		if p == "" {
			return nil, false
		}
	}
	return parts, true
}
