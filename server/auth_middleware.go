package server

import (
	"context"
	"net/http"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUser stores the identity resolved from the bearer token
const ContextKeyUser ContextKey = "user"

func UserFromContext(ctx context.Context) (*users.User, bool) {
	user, ok := ctx.Value(ContextKeyUser).(*users.User)
	return user, ok && user != nil
}

// RequireAuth resolves the bearer token through the guard and stores the
// identity in the request context.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			err := s.deps.Guard.WithIdentity(r.Context(), r.Header.Get("Authorization"), serveAs(w, r, next))
			if err != nil {
				s.rejectAuth(w, r, err)
			}
		}
	}
}

// RequireAdmin is RequireAuth restricted to administrators.
func (s *Server) RequireAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			err := s.deps.Guard.WithAdmin(r.Context(), r.Header.Get("Authorization"), serveAs(w, r, next))
			if err != nil {
				s.rejectAuth(w, r, err)
			}
		}
	}
}

// serveAs is the guard continuation that runs next with the resolved identity.
func serveAs(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) func(*users.User) error {
	return func(user *users.User) error {
		next(w, r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user)))
		return nil
	}
}

func (s *Server) rejectAuth(w http.ResponseWriter, r *http.Request, err error) {
	s.recorder.RecordAuthFailure(authFailureReason(err))
	s.writeError(w, r, err)
}

func authFailureReason(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrForbidden):
		return "forbidden"
	case apperrors.Is(err, apperrors.ErrMissingToken):
		return "missing_token"
	case apperrors.Is(err, apperrors.ErrExpired):
		return "expired"
	case apperrors.Is(err, apperrors.ErrMalformed):
		return "malformed"
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return "unauthorized"
	}
	return "error"
}

// caller returns the identity placed in the context by RequireAuth.
func caller(r *http.Request) *users.User {
	user, _ := UserFromContext(r.Context())
	return user
}
