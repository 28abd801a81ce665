package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config interface {
	EnvConfig
	CorsConfig
	AuthConfig
	StorageConfig
	SecurityConfig
	Validate() error
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Auth
	Storage
	Security
}

func New() Config {
	return mainConfig{}
}

// Validate reports every required variable that is missing or unparsable.
func (c mainConfig) Validate() error {
	var problems []string
	if c.GetEnv() != EnvDev && GetEnv(secretKeyEnvVar, "") == "" {
		problems = append(problems, secretKeyEnvVar+" is required outside "+EnvDev)
	}
	if _, err := parseDuration(tokenTTLEnvVar, defaultTokenTTL); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := parseDuration(pruneGraceEnvVar, defaultPruneGrace); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func parseDuration(envVar string, defaultValue time.Duration) (time.Duration, error) {
	raw := GetEnv(envVar, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %w", envVar, err)
	}
	return d, nil
}
