package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("failed to encode response")
	}
}

// writeJSONError writes an error response
func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// decodeJSON reads a single JSON object from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Validationf("invalid JSON body: %v", err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validationf("%s must be a positive integer", name)
	}
	return id, nil
}

// statusForError maps the error taxonomy onto HTTP statuses.
func statusForError(err error) (int, string) {
	switch {
	case apperrors.Is(err, apperrors.ErrMissingToken),
		apperrors.Is(err, apperrors.ErrMalformed),
		apperrors.Is(err, apperrors.ErrExpired),
		apperrors.Is(err, apperrors.ErrUnauthorized),
		apperrors.Is(err, apperrors.ErrBadCredentials):
		return http.StatusUnauthorized, "unauthorized"
	case apperrors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case apperrors.Is(err, apperrors.ErrAlreadyRevoked),
		apperrors.Is(err, apperrors.ErrDuplicateRegistration),
		apperrors.Is(err, apperrors.ErrAlreadyExists),
		apperrors.Is(err, apperrors.ErrInvalidReference),
		apperrors.Is(err, apperrors.ErrInUse),
		apperrors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, "bad_request"
	}
	return http.StatusInternalServerError, "server_error"
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeJSONError(w, code, "internal server error", status)
		return
	}
	writeJSONError(w, code, err.Error(), status)
}
