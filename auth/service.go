package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/internal/metrics"
	"github.com/jrsteele09/go-gym-server/memberships"
	"github.com/jrsteele09/go-gym-server/revocation"
	"github.com/jrsteele09/go-gym-server/token"
	"github.com/jrsteele09/go-gym-server/users"
)

const maxSSNLength = 20

// Login outcomes reported to the metrics recorder.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

// RegisterRequest is the payload of a self-registration.
type RegisterRequest struct {
	SSN            string `json:"SSN"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Password       string `json:"password"`
	MembershipType string `json:"membershipType"`
}

func (r *RegisterRequest) validate() error {
	if strings.TrimSpace(r.SSN) == "" || len(r.SSN) > maxSSNLength {
		return apperrors.Validationf("SSN is required and limited to %d characters", maxSSNLength)
	}
	if err := users.ValidateName("firstName", r.FirstName); err != nil {
		return err
	}
	if err := users.ValidateName("lastName", r.LastName); err != nil {
		return err
	}
	if r.Password == "" {
		return apperrors.Validationf("password is required")
	}
	return nil
}

// Repos holds all repository dependencies for the Service
type Repos struct {
	Users       users.UserRepo
	Memberships memberships.Repo
	Revocations revocation.Registry
}

// Service implements registration, login and logout.
type Service struct {
	repos       Repos
	credentials *users.CredentialStore
	tokens      *token.Service
	recorder    metrics.Recorder
}

type ServiceOption func(*Service)

func WithRecorder(r metrics.Recorder) ServiceOption {
	return func(s *Service) {
		s.recorder = r
	}
}

func NewService(repos Repos, credentials *users.CredentialStore, tokens *token.Service, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.Memberships == nil {
		return nil, errors.New("[NewService] Memberships repo is required")
	}
	if repos.Revocations == nil {
		return nil, errors.New("[NewService] Revocations registry is required")
	}
	if credentials == nil {
		return nil, errors.New("[NewService] credential store is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewService] token service is required")
	}
	s := &Service{
		repos:       repos,
		credentials: credentials,
		tokens:      tokens,
		recorder:    metrics.Nop{},
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Register creates a member identity. Sentinel memberships (admin,
// instructor) cannot be self-assigned.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*users.User, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if users.IsSentinelMembership(req.MembershipType) {
		return nil, apperrors.Validationf("membership type %q cannot be self-assigned", req.MembershipType)
	}
	if req.MembershipType != "" {
		ok, err := memberships.Exists(ctx, s.repos.Memberships, req.MembershipType)
		if err != nil {
			return nil, apperrors.Wrapf(err, "[Service Register] membership %s", req.MembershipType)
		}
		if !ok {
			return nil, fmt.Errorf("%w: membership type %s", apperrors.ErrInvalidReference, req.MembershipType)
		}
	}

	hash, err := s.credentials.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user := &users.User{
		SSN:            req.SSN,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PasswordHash:   hash,
		MembershipType: req.MembershipType,
	}
	if err := s.repos.Users.Insert(ctx, user); err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.ErrDuplicateRegistration
		}
		return nil, apperrors.Wrapf(err, "[Service Register] insert %s", req.SSN)
	}
	return user.Redacted(), nil
}

// Login verifies the credentials and issues a token. Unknown identities and
// wrong passwords both come back as apperrors.ErrBadCredentials.
func (s *Service) Login(ctx context.Context, ssn, password string) (string, *users.User, error) {
	user, err := s.credentials.Verify(ctx, ssn, password)
	if err != nil {
		s.recorder.RecordLogin(LoginFailure)
		if apperrors.Is(err, apperrors.ErrNotFound) || apperrors.Is(err, apperrors.ErrBadCredentials) {
			return "", nil, apperrors.ErrBadCredentials
		}
		return "", nil, err
	}

	tok, err := s.tokens.Issue(user.SSN, user.Role(), s.tokens.Now())
	if err != nil {
		return "", nil, err
	}
	s.recorder.RecordLogin(LoginSuccess)
	return tok, user, nil
}

// Logout revokes raw. A token that no longer validates is
// apperrors.ErrUnauthorized; a second logout is apperrors.ErrAlreadyRevoked.
func (s *Service) Logout(ctx context.Context, raw string) error {
	claims, err := s.tokens.Validate(raw, s.tokens.Now())
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if err := s.repos.Revocations.Revoke(ctx, raw, claims.ExpiresAtTime()); err != nil {
		return err
	}
	s.recorder.RecordRevocation()
	return nil
}

// LogoutHeader is Logout for an Authorization header.
func (s *Service) LogoutHeader(ctx context.Context, header string) error {
	raw, err := ParseBearer(header)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrMissingToken) {
			return err
		}
		return fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	return s.Logout(ctx, raw)
}
