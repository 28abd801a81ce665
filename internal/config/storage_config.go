package config

const (
	databaseURLEnvVar   = "DATABASE_URL"
	autoMigrateEnvVar   = "AUTO_MIGRATE"
	redisURLEnvVar      = "REDIS_URL"
	revocationCacheSize = "REVOCATION_CACHE_SIZE"
	seedFileEnvVar      = "SEED_FILE"
)

type StorageConfig interface {
	GetDatabaseURL() string
	GetAutoMigrate() bool
	GetRedisURL() string
	GetRevocationCacheSize() int
	GetSeedFile() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

// GetDatabaseURL returns the Postgres URL. Empty selects the in-memory repositories.
func (Storage) GetDatabaseURL() string {
	return GetEnv(databaseURLEnvVar, "")
}

func (Storage) GetAutoMigrate() bool {
	return GetEnvBool(autoMigrateEnvVar, true)
}

func (Storage) GetRedisURL() string {
	return GetEnv(redisURLEnvVar, "")
}

func (Storage) GetRevocationCacheSize() int {
	return GetEnvInt(revocationCacheSize, 1024)
}

func (Storage) GetSeedFile() string {
	return GetEnv(seedFileEnvVar, "")
}
