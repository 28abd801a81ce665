package config

import "time"

const (
	loginRateEnvVar     = "LOGIN_RATE_PER_MINUTE"
	loginBurstEnvVar    = "LOGIN_BURST"
	pruneScheduleEnvVar = "REVOCATION_PRUNE_SCHEDULE"
	pruneGraceEnvVar    = "REVOCATION_PRUNE_GRACE"

	defaultPruneGrace = time.Hour
)

type SecurityConfig interface {
	GetLoginRatePerMinute() int
	GetLoginBurst() int
	GetRevocationPruneSchedule() string
	GetRevocationPruneGrace() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetLoginRatePerMinute() int {
	return GetEnvInt(loginRateEnvVar, 10)
}

func (Security) GetLoginBurst() int {
	return GetEnvInt(loginBurstEnvVar, 5)
}

// GetRevocationPruneSchedule is a cron spec, e.g. "@hourly". Empty disables pruning.
func (Security) GetRevocationPruneSchedule() string {
	return GetEnv(pruneScheduleEnvVar, "")
}

func (Security) GetRevocationPruneGrace() time.Duration {
	grace, _ := parseDuration(pruneGraceEnvVar, defaultPruneGrace)
	return grace
}
