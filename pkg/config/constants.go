package config

// EnvPrefix namespaces every environment variable the app reads.
const EnvPrefix = "arcoffee"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "ARCOFFEE_APP_ENV"
	EnvPort     = "ARCOFFEE_APP_PORT"
	EnvDBDSN    = "ARCOFFEE_DB_DSN"
	EnvDBHost   = "ARCOFFEE_DB_HOST"
	EnvDBUser   = "ARCOFFEE_DB_USER"
	EnvDBName   = "ARCOFFEE_DB_NAME"
	EnvRedisURL = "ARCOFFEE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
