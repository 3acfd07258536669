package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lox/skylog/internal/auth"
	"github.com/lox/skylog/internal/logbook"
	"github.com/lox/skylog/internal/scan"
)

const maxJSONBody = 1 << 20

var errNotFound = errors.New("not found")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps domain errors to HTTP statuses. Anything unrecognised is
// an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, logbook.ErrInvalidJump),
		errors.Is(err, scan.ErrEmptyImage),
		errors.Is(err, scan.ErrNotImage):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrLicenseNotFound),
		errors.Is(err, logbook.ErrJumpNotFound),
		errors.Is(err, errNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrLicenseTaken),
		errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, scan.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Errorw("request failed", "error", err)
		msg = "internal error"
	}
	writeError(w, status, msg)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
