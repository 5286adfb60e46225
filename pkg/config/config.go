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
	Store        StoreConfig
	Admin        AdminConfig
	RateLimit    RateLimitConfig
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
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ARCOFFEE_APP_ENV" required:"true"`
	Port         string `envconfig:"ARCOFFEE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ARCOFFEE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ARCOFFEE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ARCOFFEE_DB_DSN"`
	Driver string `envconfig:"ARCOFFEE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ARCOFFEE_DB_HOST"`
	LegacyPort     int    `envconfig:"ARCOFFEE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ARCOFFEE_DB_USER"`
	LegacyPassword string `envconfig:"ARCOFFEE_DB_PASSWORD"`
	LegacyName     string `envconfig:"ARCOFFEE_DB_NAME"`
	LegacySSLMode  string `envconfig:"ARCOFFEE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ARCOFFEE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ARCOFFEE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ARCOFFEE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ARCOFFEE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ARCOFFEE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ARCOFFEE_REDIS_ADDR"`
	Password     string        `envconfig:"ARCOFFEE_REDIS_PASSWORD"`
	DB           int           `envconfig:"ARCOFFEE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ARCOFFEE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ARCOFFEE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ARCOFFEE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ARCOFFEE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ARCOFFEE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// StoreConfig carries the customer-visible storefront identity.
type StoreConfig struct {
	Name string `envconfig:"ARCOFFEE_STORE_NAME" default:"ARCoffee"`
	// OrderPrefix is baked into every order number; changing it requires a
	// migration plan for historical orders.
	OrderPrefix string `envconfig:"ARCOFFEE_ORDER_PREFIX" default:"ARC"`
}

// AdminConfig gates the back-office routes. Real authentication lives in the
// identity collaborator; this key is a coarse deployment-level stopgap.
type AdminConfig struct {
	APIKey string `envconfig:"ARCOFFEE_ADMIN_API_KEY"`
}

type RateLimitConfig struct {
	CheckoutWindow  time.Duration `envconfig:"ARCOFFEE_RATE_LIMIT_CHECKOUT_WINDOW" default:"1m"`
	CheckoutIPLimit int           `envconfig:"ARCOFFEE_RATE_LIMIT_CHECKOUT_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ARCOFFEE_AUTO_MIGRATE" default:"false"`
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
