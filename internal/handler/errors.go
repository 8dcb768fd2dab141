package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// Error codes returned in the "code" field of an error body.
const (
	codeNotFound           = "not_found"
	codeValidation         = "validation_error"
	codeInvalidSelection   = "invalid_selection"
	codeUnknownOffering    = "unknown_offering"
	codeCatalogUnavailable = "catalog_unavailable"
	codeRequestTooLarge    = "request_too_large"
	codeInternal           = "internal_error"
)

const catalogUnavailableNotice = "the hunt catalog is not available, try again shortly"

// ErrorDetail is the payload of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service error to its HTTP status. notFound is the
// message used when a not-found error carries no detail of its own.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		msg := unwrapMessage(err, domain.ErrNotFound)
		if msg == domain.ErrNotFound.Error() {
			msg = notFound
		}
		writeError(w, http.StatusNotFound, codeNotFound, msg)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrUnknownOffering):
		writeError(w, http.StatusUnprocessableEntity, codeUnknownOffering, unwrapMessage(err, domain.ErrUnknownOffering))
	case errors.Is(err, domain.ErrInvalidSelection):
		writeError(w, http.StatusUnprocessableEntity, codeInvalidSelection, unwrapMessage(err, domain.ErrInvalidSelection))
	case errors.Is(err, domain.ErrCatalogUnavailable):
		slog.WarnContext(r.Context(), "catalog unavailable", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusServiceUnavailable, codeCatalogUnavailable, catalogUnavailableNotice)
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// writeRequestError reports a body or parameter rejected before reaching
// the service layer.
func writeRequestError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, codeRequestTooLarge, "request body is too large")
		return
	}
	writeError(w, http.StatusUnprocessableEntity, codeValidation, err.Error())
}

// decodeBody decodes a JSON request body into dst. An empty body is allowed
// only when optional is set, leaving dst untouched.
func decodeBody(r *http.Request, dst any, optional bool) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			if optional {
				return nil
			}
			return errors.New("request body is required")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errors.New("invalid request body: " + err.Error())
	}
	return nil
}

// unwrapMessage extracts the human-readable part that follows a wrapped
// sentinel, e.g.
// "service.PackageService.AddHunt: pricing.Compute: unknown offering: hunt \"moose\"" → "hunt \"moose\"".
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	if strings.HasSuffix(msg, sentinel.Error()) {
		return sentinel.Error()
	}
	return msg
}
