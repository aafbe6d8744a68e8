package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Session      SessionConfig
	AuthHook     AuthHookConfig
	FeatureFlags FeatureFlagsConfig
	Stripe       StripeConfig
	Webhooks     WebhooksConfig
	Investments  InvestmentsConfig
	Cron         CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"COFOUNDR_APP_ENV" required:"true"`
	Port         string `envconfig:"COFOUNDR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"COFOUNDR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COFOUNDR_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"COFOUNDR_LOG_FORMAT" default:"json"`
	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string `envconfig:"COFOUNDR_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

type ServiceConfig struct {
	Kind string `envconfig:"COFOUNDR_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"COFOUNDR_DB_DSN"`
	Driver string `envconfig:"COFOUNDR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"COFOUNDR_DB_HOST"`
	LegacyPort     int    `envconfig:"COFOUNDR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"COFOUNDR_DB_USER"`
	LegacyPassword string `envconfig:"COFOUNDR_DB_PASSWORD"`
	LegacyName     string `envconfig:"COFOUNDR_DB_NAME"`
	LegacySSLMode  string `envconfig:"COFOUNDR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COFOUNDR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COFOUNDR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COFOUNDR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COFOUNDR_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// SlowQueryThreshold is the duration above which a statement is logged at warn.
	SlowQueryThreshold time.Duration `envconfig:"COFOUNDR_DB_SLOW_QUERY_THRESHOLD" default:"500ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"COFOUNDR_REDIS_URL" required:"true"`
	Address      string        `envconfig:"COFOUNDR_REDIS_ADDR"`
	Password     string        `envconfig:"COFOUNDR_REDIS_PASSWORD"`
	DB           int           `envconfig:"COFOUNDR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COFOUNDR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COFOUNDR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COFOUNDR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COFOUNDR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COFOUNDR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig describes the tokens minted by the external auth provider.
type JWTConfig struct {
	Secret            string `envconfig:"COFOUNDR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"COFOUNDR_JWT_ISSUER"`
	Audience          string `envconfig:"COFOUNDR_JWT_AUDIENCE" default:"authenticated"`
	ExpirationMinutes int    `envconfig:"COFOUNDR_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTTL returns the provider access token lifetime.
func (j JWTConfig) AccessTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type SessionConfig struct {
	CacheTTL time.Duration `envconfig:"COFOUNDR_SESSION_CACHE_TTL" default:"15m"`
}

type AuthHookConfig struct {
	Secret string `envconfig:"COFOUNDR_AUTH_HOOK_SECRET"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"COFOUNDR_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"COFOUNDR_AUTO_MIGRATE" default:"false"`
}

type StripeConfig struct {
	APIKey string `envconfig:"COFOUNDR_STRIPE_API_KEY"`
	Secret string `envconfig:"COFOUNDR_STRIPE_SECRET"`
	Env    string `envconfig:"COFOUNDR_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type WebhooksConfig struct {
	IdempotencyTTL time.Duration `envconfig:"COFOUNDR_WEBHOOK_IDEMPOTENCY_TTL" default:"720h"`
}

type InvestmentsConfig struct {
	EnforceBounds bool `envconfig:"COFOUNDR_INVESTMENTS_ENFORCE_BOUNDS" default:"false"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"COFOUNDR_CRON_INTERVAL" default:"1h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
