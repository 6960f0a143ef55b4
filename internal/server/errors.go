package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/user/content-system/internal/ingest"
	"github.com/user/content-system/internal/query"
	"github.com/user/content-system/internal/store"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// userMessage is the client-facing description of an error class
type userMessage struct {
	status int
	kind   string
	code   string
	action string
	// expose returns the wrapped error text to the client
	expose bool
}

var errorClasses = []struct {
	target error
	msg    userMessage
}{
	{ingest.ErrMalformedInput, userMessage{http.StatusBadRequest, "MalformedInput", "FILE002", "Upload a CSV file with the required columns.", true}},
	{ingest.ErrDateParse, userMessage{http.StatusBadRequest, "DateParseError", "VAL001", "Use YYYY-MM-DD for release_date.", true}},
	{query.ErrTooManySortFields, userMessage{http.StatusBadRequest, "TooManySortFields", "QRY001", "Sort by at most two fields.", true}},
	{query.ErrInvalidSortField, userMessage{http.StatusBadRequest, "InvalidSortField", "QRY002", "Sort by release_date, rating, title or vote_count.", true}},
	{query.ErrInvalidSortDirection, userMessage{http.StatusBadRequest, "InvalidSortDirection", "QRY003", "Use asc or desc as the sort direction.", true}},
	{query.ErrInvalidYear, userMessage{http.StatusBadRequest, "InvalidYear", "QRY004", "Use YYYY or YYYY-YYYY for year.", true}},
	{query.ErrInvalidPage, userMessage{http.StatusBadRequest, "InvalidPage", "VAL007", "Use page >= 1 and page_size between 1 and 100.", true}},
	{store.ErrUniquenessConflict, userMessage{http.StatusConflict, "UniquenessConflict", "DB002", "Another upload changed the same data; retry the request.", false}},
	{errUploadRateLimited, userMessage{http.StatusTooManyRequests, "RateLimited", "RATE001", "Wait a moment before uploading again.", true}},
}

var internalError = userMessage{http.StatusInternalServerError, "InternalError", "SYS001", "Try again later. If the problem persists contact support.", false}

// classify maps an error to its client-facing class
func classify(err error) userMessage {
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			return c.msg
		}
	}
	return internalError
}

// respondError logs the technical error with the request id and writes the
// client-facing body
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := classify(err)

	event := log.Warn()
	if msg.status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", msg.status).
		Str("code", msg.code).
		Msg("Request failed")

	RecordError(msg.code)

	message := http.StatusText(msg.status)
	if msg.expose {
		message = err.Error()
	}

	writeJSON(w, msg.status, ErrorResponse{
		Error:   msg.kind,
		Message: message,
		Action:  msg.action,
		Code:    msg.code,
	})
}
