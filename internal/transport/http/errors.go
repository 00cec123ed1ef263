package http

import (
	"errors"
	"net/http"

	"github.com/cimillas/eventfinder/internal/domain"
	"github.com/cimillas/eventfinder/internal/llm"
	"github.com/cimillas/eventfinder/internal/mailer"
)

const (
	codeMethodNotAllowed         = "method_not_allowed"
	codeNotFound                 = "not_found"
	codeInvalidRequestBody       = "invalid_request_body"
	codeInvalidID                = "invalid_id"
	codeInvalidBucket            = "invalid_bucket"
	codeInvalidMaxPrice          = "invalid_max_price"
	codeInvalidDate              = "invalid_date"
	codeInvalidStartsAt          = "invalid_starts_at"
	codeInvalidInput             = "invalid_input"
	codeEventTitleRequired       = "event_title_required"
	codeStartRequired            = "start_required"
	codeInvalidSchedule          = "invalid_schedule"
	codeInvalidPrice             = "invalid_price"
	codeInvalidCapacity          = "invalid_capacity"
	codeUserRequired             = "user_required"
	codeRecipientRequired        = "recipient_required"
	codeEventNotFound            = "event_not_found"
	codeDuplicateEvent           = "duplicate_event"
	codeAlreadyRegistered        = "already_registered"
	codeEventFull                = "event_full"
	codeStoreUnavailable         = "store_unavailable"
	codeRecommenderNotConfigured = "recommender_not_configured"
	codeMailerNotConfigured      = "mailer_not_configured"
	codeInvalidRecommendation    = "invalid_recommendation"
	codeUpstreamError            = "upstream_error"
	codeForbidden                = "forbidden"
	codeInternalError            = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

var errorStatuses = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrEventNotFound, http.StatusNotFound, codeEventNotFound},
	{domain.ErrInvalidID, http.StatusBadRequest, codeInvalidID},
	{domain.ErrInvalidBucket, http.StatusBadRequest, codeInvalidBucket},
	{domain.ErrInvalidDate, http.StatusBadRequest, codeInvalidDate},
	{domain.ErrEventTitleRequired, http.StatusBadRequest, codeEventTitleRequired},
	{domain.ErrStartRequired, http.StatusBadRequest, codeStartRequired},
	{domain.ErrInvalidSchedule, http.StatusBadRequest, codeInvalidSchedule},
	{domain.ErrInvalidPrice, http.StatusBadRequest, codeInvalidPrice},
	{domain.ErrInvalidCapacity, http.StatusBadRequest, codeInvalidCapacity},
	{domain.ErrInvalidInput, http.StatusBadRequest, codeInvalidInput},
	{domain.ErrUserRequired, http.StatusBadRequest, codeUserRequired},
	{domain.ErrRecipientRequired, http.StatusBadRequest, codeRecipientRequired},
	{domain.ErrDuplicateEventID, http.StatusConflict, codeDuplicateEvent},
	{domain.ErrAlreadyRegistered, http.StatusConflict, codeAlreadyRegistered},
	{domain.ErrEventFull, http.StatusConflict, codeEventFull},
	{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable},
	{domain.ErrRecommenderNotConfigured, http.StatusServiceUnavailable, codeRecommenderNotConfigured},
	{domain.ErrMailerNotConfigured, http.StatusServiceUnavailable, codeMailerNotConfigured},
	{domain.ErrInvalidRecommendation, http.StatusBadGateway, codeInvalidRecommendation},
}

// writeServiceError maps a service error onto the JSON envelope.
// Unknown errors become a 500 and provider failures a 502, neither leaking
// their text.
func writeServiceError(w http.ResponseWriter, err error) {
	for _, m := range errorStatuses {
		if errors.Is(err, m.err) {
			writeError(w, m.status, m.code, err.Error())
			return
		}
	}
	var llmErr *llm.APIError
	var mailErr *mailer.APIError
	if errors.As(err, &llmErr) || errors.As(err, &mailErr) {
		writeError(w, http.StatusBadGateway, codeUpstreamError, "upstream service error")
		return
	}
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	for _, m := range allowed {
		w.Header().Add("Allow", m)
	}
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
}
