package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/errors"
	"github.com/julianstephens/lifegrid/internal/logger"
	"github.com/julianstephens/lifegrid/internal/models"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
	Field  string `json:"field,omitempty"`
}

const (
	codeInternal        = "internal_error"
	codeRequestTooLarge = "request_too_large"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func statusFor(kind errors.Kind) int {
	switch kind {
	case errors.KindValidation, errors.KindFutureDate, errors.KindRange:
		return http.StatusBadRequest
	case errors.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps classified errors to 4xx responses. Anything else is a
// 500 with a generic body; the cause is only logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var e *errors.Error
	if stderrors.As(err, &e) {
		writeJSON(w, statusFor(e.Kind), ErrorResponse{
			Detail: e.Message,
			Code:   string(e.Kind),
			Field:  e.Field,
		})
		return
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
			Detail: "request body too large",
			Code:   codeRequestTooLarge,
		})
		return
	}

	logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Detail: "internal server error",
		Code:   codeInternal,
	})
}

// decodeBody reads a JSON body of at most constants.MaxRequestBodySize bytes.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return err
		}
		return &errors.Error{Kind: errors.KindValidation, Message: "malformed JSON body: " + err.Error()}
	}
	return nil
}

// pathDate parses the {date} path segment.
func pathDate(r *http.Request) (models.Date, error) {
	return parseDateParam("date", r.PathValue("date"))
}

func parseDateParam(field, raw string) (models.Date, error) {
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, errors.Validation(field, err.Error())
	}
	return d, nil
}

// queryDate parses an optional query parameter; absent means nil.
func queryDate(r *http.Request, name string) (*models.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := parseDateParam(name, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
