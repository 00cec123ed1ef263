package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubCatalogStatus int

func (s stubCatalogStatus) Len() int { return int(s) }

type stubRefreshStatus struct {
	last time.Time
	err  error
}

func (s stubRefreshStatus) Status() (time.Time, error) { return s.last, s.err }

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	last := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		refresh    RefreshStatus
		wantStatus string
		wantErr    string
	}{
		{name: "static", refresh: nil, wantStatus: "ok"},
		{name: "refreshed", refresh: stubRefreshStatus{last: last}, wantStatus: "ok"},
		{name: "failed refresh", refresh: stubRefreshStatus{last: last, err: errors.New("db down")}, wantStatus: "degraded", wantErr: "db down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			HandleHealth(stubCatalogStatus(10), tt.refresh).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			var resp healthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.wantStatus || resp.Events != 10 || resp.RefreshErr != tt.wantErr {
				t.Fatalf("unexpected response %+v", resp)
			}
		})
	}

	rec := httptest.NewRecorder()
	HandleHealth(stubCatalogStatus(0), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
