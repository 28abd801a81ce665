package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/users"
)

const DefaultTTL = 24 * time.Hour

// Claims is the payload of a session token.
type Claims struct {
	SSN  string     `json:"ssn"`
	Role users.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and validates stateless session tokens. Revocation is
// checked elsewhere; Validate only looks at signature and expiry.
type Service struct {
	signer  Signer
	ttl     time.Duration
	nowFunc func() time.Time
	parser  *jwt.Parser
}

type ServiceOption func(*Service)

func WithTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.ttl = ttl
	}
}

func WithNowFunc(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = now
	}
}

func NewService(signer Signer, options ...ServiceOption) (*Service, error) {
	if signer == nil {
		return nil, errors.New("[NewService] signer is required")
	}
	s := &Service{
		signer:  signer,
		ttl:     DefaultTTL,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.ttl <= 0 {
		return nil, fmt.Errorf("[NewService] ttl must be positive, got %s", s.ttl)
	}

	// Expiry is checked by hand after the signature so that the two
	// failures stay distinguishable.
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{signer.GetSigningMethod().Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	return s, nil
}

func (s *Service) Now() time.Time {
	return s.nowFunc()
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for ssn with expiry now+TTL.
func (s *Service) Issue(ssn string, role users.Role, now time.Time) (string, error) {
	if ssn == "" {
		return "", errors.New("[Service Issue] subject is required")
	}
	if !role.Valid() {
		return "", fmt.Errorf("[Service Issue] invalid role %q", role)
	}

	claims := Claims{
		SSN:  ssn,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.New().String(), // two logins in the same second still differ
		},
	}
	signed, err := s.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("[Service Issue] %w", err)
	}
	return signed, nil
}

// Validate verifies the signature, then expiry. It returns
// apperrors.ErrMalformed or apperrors.ErrExpired on failure.
func (s *Service) Validate(raw string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	if _, err := s.parser.ParseWithClaims(raw, claims, s.signer.GetVerificationKey); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformed, err)
	}
	if claims.SSN == "" || !claims.Role.Valid() || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing or invalid claims", apperrors.ErrMalformed)
	}
	if !now.Before(claims.ExpiresAt.Time) {
		return nil, apperrors.ErrExpired
	}
	return claims, nil
}

// ExpiresAtTime returns the embedded expiry, or the zero time when absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
