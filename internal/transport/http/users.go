package http

import (
	"net/http"

	"github.com/cimillas/eventfinder/internal/domain"
)

// Reminders is the per-user reminder set.
type Reminders interface {
	Add(userID, eventID string) error
	Remove(userID, eventID string) error
	Has(userID, eventID string) bool
	List(userID string) ([]domain.Event, error)
}

// HandleUserResource serves the /users/ subtree:
//
//	GET    /users/{userID}/registrations
//	GET    /users/{userID}/reminders
//	GET    /users/{userID}/reminders/{eventID}
//	PUT    /users/{userID}/reminders/{eventID}
//	DELETE /users/{userID}/reminders/{eventID}
func HandleUserResource(reader EventReader, registrar Registrar, reminders Reminders) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts, ok := splitPath(r.URL.Path, "users")
		if !ok || len(parts) < 2 {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		userID := parts[0]

		switch {
		case len(parts) == 2 && parts[1] == "registrations":
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			if registrar == nil {
				writeServiceError(w, domain.ErrStoreUnavailable)
				return
			}
			events, err := registrar.ListForUser(r.Context(), userID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, listResponse{Events: toEventResponses(events, reader.Location()), Total: len(events)})
		case len(parts) == 2 && parts[1] == "reminders":
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			events, err := reminders.List(userID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, listResponse{Events: toEventResponses(events, reader.Location()), Total: len(events)})
		case len(parts) == 3 && parts[1] == "reminders":
			var err error
			switch r.Method {
			case http.MethodGet:
				writeJSON(w, http.StatusOK, reminderStatusResponse{
					EventID:  parts[2],
					UserID:   userID,
					Reminded: reminders.Has(userID, parts[2]),
				})
				return
			case http.MethodPut:
				err = reminders.Add(userID, parts[2])
			case http.MethodDelete:
				err = reminders.Remove(userID, parts[2])
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
				return
			}
			if err != nil {
				writeServiceError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

type reminderStatusResponse struct {
	EventID  string `json:"eventId"`
	UserID   string `json:"userId"`
	Reminded bool   `json:"reminded"`
}
