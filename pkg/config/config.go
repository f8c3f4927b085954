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
	Checkout     CheckoutConfig
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
	Env          string `envconfig:"DUKKON_APP_ENV" required:"true"`
	Port         string `envconfig:"DUKKON_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DUKKON_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DUKKON_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"DUKKON_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DUKKON_DB_DSN"`
	Driver string `envconfig:"DUKKON_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DUKKON_DB_HOST"`
	LegacyPort     int    `envconfig:"DUKKON_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DUKKON_DB_USER"`
	LegacyPassword string `envconfig:"DUKKON_DB_PASSWORD"`
	LegacyName     string `envconfig:"DUKKON_DB_NAME"`
	LegacySSLMode  string `envconfig:"DUKKON_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DUKKON_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DUKKON_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DUKKON_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DUKKON_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DUKKON_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DUKKON_REDIS_ADDR"`
	Password     string        `envconfig:"DUKKON_REDIS_PASSWORD"`
	DB           int           `envconfig:"DUKKON_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DUKKON_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DUKKON_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DUKKON_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DUKKON_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DUKKON_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CheckoutConfig struct {
	// RequestTimeout bounds the checkout transaction; on expiry the whole
	// unit of work rolls back.
	RequestTimeout time.Duration `envconfig:"DUKKON_CHECKOUT_REQUEST_TIMEOUT" default:"5s"`
	IdempotencyTTL time.Duration `envconfig:"DUKKON_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DUKKON_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DUKKON_AUTO_MIGRATE" default:"false"`
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
