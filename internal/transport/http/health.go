package http

import (
	"net/http"
	"time"
)

// CatalogStatus reports the state of the in-memory catalog.
type CatalogStatus interface {
	Len() int
}

// RefreshStatus reports the latest catalog refresh. Nil in static mode.
type RefreshStatus interface {
	Status() (time.Time, error)
}

type healthResponse struct {
	Status      string     `json:"status"`
	Events      int        `json:"events"`
	LastRefresh *time.Time `json:"lastRefresh,omitempty"`
	RefreshErr  string     `json:"refreshError,omitempty"`
}

// HandleHealth reports liveness plus catalog size. A failed last refresh is
// reported as "degraded" while the previous snapshot keeps being served.
func HandleHealth(catalog CatalogStatus, refresh RefreshStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			methodNotAllowed(w, http.MethodGet, http.MethodHead)
			return
		}
		resp := healthResponse{Status: "ok", Events: catalog.Len()}
		if refresh != nil {
			last, err := refresh.Status()
			if !last.IsZero() {
				resp.LastRefresh = &last
			}
			if err != nil {
				resp.Status = "degraded"
				resp.RefreshErr = err.Error()
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
