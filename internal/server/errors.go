package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/catalog"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/dispatch"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/history"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/validator"
)

// HTTPError is an error with a status code and a user-facing message.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

var (
	errNotFound         = &HTTPError{Status: http.StatusNotFound, Message: "not found"}
	errMethodNotAllowed = &HTTPError{Status: http.StatusMethodNotAllowed, Message: "method not allowed"}
	errNoPreview        = &HTTPError{Status: http.StatusNotFound, Message: "No preview available."}
)

func badRequest(msg string) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Message: msg}
}

type errorBody struct {
	Error  string                     `json:"error"`
	Fields validator.ValidationErrors `json:"fields,omitempty"`
	Result any                        `json:"result,omitempty"`
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// wrap converts a handlerFunc into an http.HandlerFunc that routes errors to handleError.
func (s *Server) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.handleError(w, r, err)
		}
	}
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	body := errorBody{Error: err.Error()}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		body.Error = httpErr.Message
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body.Fields = verrs
	}

	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
		if httpErr == nil {
			body.Error = http.StatusText(status)
		}
	}
	writeJSON(w, status, body)
}

func statusOf(err error) int {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.Is(err, dispatch.ErrConfiguration),
		errors.Is(err, catalog.ErrNoFile),
		errors.Is(err, catalog.ErrUnsupportedType),
		errors.Is(err, catalog.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, dispatch.ErrRendering):
		return http.StatusUnprocessableEntity
	case errors.Is(err, history.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
