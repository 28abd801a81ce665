package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/token"
	"github.com/jrsteele09/go-gym-server/users"
	"github.com/stretchr/testify/require"
)

const secretStr = "1234"

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 500_000_000, time.UTC)

func setupService(t *testing.T, options ...token.ServiceOption) *token.Service {
	t.Helper()

	signer, err := token.NewHMACSigner(secretStr)
	require.NoError(t, err)
	s, err := token.NewService(signer, options...)
	require.NoError(t, err)
	return s
}

func TestNewService(t *testing.T) {
	_, err := token.NewService(nil)
	require.Error(t, err)

	_, err = token.NewHMACSigner("")
	require.Error(t, err)

	signer, _ := token.NewHMACSigner(secretStr)
	_, err = token.NewService(signer, token.WithTTL(0))
	require.Error(t, err)

	s, err := token.NewService(signer)
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, s.TTL())
}

func TestIssueValidateRoundTrip(t *testing.T) {
	s := setupService(t)

	for _, role := range []users.Role{users.RoleMember, users.RoleInstructor, users.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			raw, err := s.Issue("19900101-1234", role, t0)
			require.NoError(t, err)

			claims, err := s.Validate(raw, t0.Add(s.TTL()-time.Second))
			require.NoError(t, err)
			require.Equal(t, "19900101-1234", claims.SSN)
			require.Equal(t, role, claims.Role)
			require.NotEmpty(t, claims.ID)
		})
	}
}

func TestValidateExpiry(t *testing.T) {
	s := setupService(t)
	raw, err := s.Issue("ADMIN123", users.RoleAdmin, t0)
	require.NoError(t, err)

	_, err = s.Validate(raw, t0.Add(s.TTL()+time.Second))
	require.ErrorIs(t, err, apperrors.ErrExpired)

	claims, err := s.Validate(raw, t0)
	require.NoError(t, err)

	// now == expiry is already expired
	_, err = s.Validate(raw, claims.ExpiresAtTime())
	require.ErrorIs(t, err, apperrors.ErrExpired)
	_, err = s.Validate(raw, claims.ExpiresAtTime().Add(-time.Nanosecond))
	require.NoError(t, err)
}

func TestValidateCustomTTL(t *testing.T) {
	s := setupService(t, token.WithTTL(time.Hour))
	raw, err := s.Issue("1", users.RoleMember, t0)
	require.NoError(t, err)

	_, err = s.Validate(raw, t0.Add(59*time.Minute))
	require.NoError(t, err)
	_, err = s.Validate(raw, t0.Add(61*time.Minute))
	require.ErrorIs(t, err, apperrors.ErrExpired)
}

func TestTamperedTokenIsMalformed(t *testing.T) {
	s := setupService(t)
	raw, err := s.Issue("19900101-1234", users.RoleMember, t0)
	require.NoError(t, err)

	// The final signature character carries padding bits that lenient
	// base64 decoding ignores, so it is left out.
	for i := 0; i < len(raw)-1; i++ {
		b := []byte(raw)
		b[i] ^= 0x01
		_, err := s.Validate(string(b), t0)
		require.ErrorIs(t, err, apperrors.ErrMalformed, "byte %d", i)

		// Signature is checked before expiry.
		_, err = s.Validate(string(b), t0.Add(48*time.Hour))
		require.ErrorIs(t, err, apperrors.ErrMalformed, "byte %d", i)
	}
}

func TestForeignTokensAreMalformed(t *testing.T) {
	s := setupService(t)

	other, _ := token.NewHMACSigner("another key")
	otherService, err := token.NewService(other)
	require.NoError(t, err)
	foreign, err := otherService.Issue("1", users.RoleAdmin, t0)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, token.Claims{
		SSN:  "1",
		Role: users.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	signer, _ := token.NewHMACSigner(secretStr)
	noExpiry, err := signer.Sign(token.Claims{SSN: "1", Role: users.RoleAdmin})
	require.NoError(t, err)

	badRole, err := signer.Sign(token.Claims{
		SSN:              "1",
		Role:             users.Role("ad"),
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour))},
	})
	require.NoError(t, err)

	tests := map[string]string{
		"wrong key":    foreign,
		"alg none":     noneAlg,
		"no expiry":    noExpiry,
		"unknown role": badRole,
		"garbage":      "not-a-token",
		"empty":        "",
		"two segments": strings.Join(strings.Split(foreign, ".")[:2], "."),
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := s.Validate(raw, t0)
			require.ErrorIs(t, err, apperrors.ErrMalformed)
		})
	}
}

func TestIssueRejectsBadInput(t *testing.T) {
	s := setupService(t)

	_, err := s.Issue("", users.RoleMember, t0)
	require.Error(t, err)

	_, err = s.Issue("1", users.Role("owner"), t0)
	require.Error(t, err)
}

func TestIssueProducesDistinctTokens(t *testing.T) {
	s := setupService(t)
	a, err := s.Issue("1", users.RoleMember, t0)
	require.NoError(t, err)
	b, err := s.Issue("1", users.RoleMember, t0)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
