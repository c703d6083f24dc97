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
	DB           DBConfig
	Redis        RedisConfig
	Billing      BillingConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Billing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DINEFLOW_APP_ENV" required:"true"`
	Port         string `envconfig:"DINEFLOW_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DINEFLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DINEFLOW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DINEFLOW_DB_DSN"`
	Driver string `envconfig:"DINEFLOW_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DINEFLOW_DB_HOST"`
	LegacyPort     int    `envconfig:"DINEFLOW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DINEFLOW_DB_USER"`
	LegacyPassword string `envconfig:"DINEFLOW_DB_PASSWORD"`
	LegacyName     string `envconfig:"DINEFLOW_DB_NAME"`
	LegacySSLMode  string `envconfig:"DINEFLOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DINEFLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DINEFLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DINEFLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DINEFLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DINEFLOW_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DINEFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"DINEFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"DINEFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DINEFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DINEFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DINEFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DINEFLOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DINEFLOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// BillingConfig carries the tenant-level defaults threaded into every core
// call through the TenantContext: which bill counter to number against, how
// many decimal places money is rounded to, and which customer row stands in
// for a walk-in sale.
type BillingConfig struct {
	DefaultTenantCode  string `envconfig:"DINEFLOW_BILLING_TENANT_CODE" default:"default"`
	DefaultCounterID   string `envconfig:"DINEFLOW_BILLING_COUNTER_ID" default:"1"`
	RoundingPrecision  int32  `envconfig:"DINEFLOW_BILLING_ROUNDING_PRECISION" default:"2"`
	WalkInCustomerID   string `envconfig:"DINEFLOW_BILLING_WALKIN_CUSTOMER_ID" default:"1"`
	IdempotencyTTLMins int    `envconfig:"DINEFLOW_BILLING_IDEMPOTENCY_TTL_MINUTES" default:"10080"`
}

func (b BillingConfig) validate() error {
	switch b.RoundingPrecision {
	case 2, 3, 4:
		return nil
	default:
		return fmt.Errorf("rounding precision must be 2, 3 or 4 (got %d)", b.RoundingPrecision)
	}
}

// IdempotencyTTL returns the settle-endpoint replay window.
func (b BillingConfig) IdempotencyTTL() time.Duration {
	if b.IdempotencyTTLMins <= 0 {
		return 0
	}
	return time.Duration(b.IdempotencyTTLMins) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DINEFLOW_AUTO_MIGRATE" default:"false"`
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
