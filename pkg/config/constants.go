package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "paneltrack"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv    = "PANELTRACK_APP_ENV"
	EnvPort      = "PANELTRACK_APP_PORT"
	EnvDBDSN     = "PANELTRACK_DB_DSN"
	EnvDBHost    = "PANELTRACK_DB_HOST"
	EnvDBUser    = "PANELTRACK_DB_USER"
	EnvDBName    = "PANELTRACK_DB_NAME"
	EnvRedisURL  = "PANELTRACK_REDIS_URL"
	EnvJWTSecret = "PANELTRACK_JWT_SECRET"
	EnvJWTIssuer = "PANELTRACK_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
