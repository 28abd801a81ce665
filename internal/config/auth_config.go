package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	secretKeyEnvVar     = "SECRET_KEY"
	tokenTTLEnvVar      = "TOKEN_TTL"
	bcryptCostEnvVar    = "BCRYPT_COST"
	adminSSNEnvVar      = "ADMIN_SSN"
	adminPasswordEnvVar = "ADMIN_PASSWORD"

	defaultTokenTTL = 24 * time.Hour

	// Only used when ENV=DEV and SECRET_KEY is unset.
	devSecretKey = "dev-only-signing-key"
)

type AuthConfig interface {
	GetSecretKey() string
	GetTokenTTL() time.Duration
	GetBcryptCost() int
	GetAdminSSN() string
	GetAdminPassword() string
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetSecretKey() string {
	return GetEnv(secretKeyEnvVar, devSecretKey)
}

func (Auth) GetTokenTTL() time.Duration {
	ttl, _ := parseDuration(tokenTTLEnvVar, defaultTokenTTL)
	return ttl
}

func (Auth) GetBcryptCost() int {
	cost := GetEnvInt(bcryptCostEnvVar, bcrypt.DefaultCost)
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

func (Auth) GetAdminSSN() string {
	return GetEnv(adminSSNEnvVar, "ADMIN123")
}

func (Auth) GetAdminPassword() string {
	return GetEnv(adminPasswordEnvVar, "admin123")
}

// UsingDevSecret reports whether the signing key fell back to the built-in value.
func UsingDevSecret() bool {
	return GetEnv(secretKeyEnvVar, "") == ""
}
