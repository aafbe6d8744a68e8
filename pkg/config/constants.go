package config

// EnvPrefix is handed to envconfig; every field carries an explicit tag so the
// prefix only matters for un-tagged fields.
const EnvPrefix = "COFOUNDR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "COFOUNDR_APP_ENV"
	EnvPort      = "COFOUNDR_APP_PORT"
	EnvLogLevel  = "COFOUNDR_LOG_LEVEL"
	EnvLogFormat = "COFOUNDR_LOG_FORMAT"

	EnvDBDSN  = "COFOUNDR_DB_DSN"
	EnvDBHost = "COFOUNDR_DB_HOST"
	EnvDBPort = "COFOUNDR_DB_PORT"
	EnvDBUser = "COFOUNDR_DB_USER"
	EnvDBPass = "COFOUNDR_DB_PASSWORD"
	EnvDBName = "COFOUNDR_DB_NAME"

	EnvRedisURL = "COFOUNDR_REDIS_URL"

	EnvJWTSecret   = "COFOUNDR_JWT_SECRET"
	EnvJWTIssuer   = "COFOUNDR_JWT_ISSUER"
	EnvJWTAudience = "COFOUNDR_JWT_AUDIENCE"

	EnvSessionCacheTTL = "COFOUNDR_SESSION_CACHE_TTL"
	EnvAuthHookSecret  = "COFOUNDR_AUTH_HOOK_SECRET"

	EnvStripeAPIKey = "COFOUNDR_STRIPE_API_KEY"
	EnvStripeSecret = "COFOUNDR_STRIPE_SECRET"

	EnvEnforceInvestmentBounds = "COFOUNDR_INVESTMENTS_ENFORCE_BOUNDS"
	EnvCronInterval            = "COFOUNDR_CRON_INTERVAL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
