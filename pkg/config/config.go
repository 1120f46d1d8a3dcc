package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "OKW"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv    = "OKW_APP_ENV"
	EnvPort      = "OKW_APP_PORT"
	EnvDBDSN     = "OKW_DB_DSN"
	EnvRedisURL  = "OKW_REDIS_URL"
	EnvJWTSecret = "OKW_JWT_SECRET"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Session      SessionConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OKW_APP_ENV" required:"true"`
	Port         string `envconfig:"OKW_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"OKW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OKW_LOG_WARN_STACK" default:"false"`

	ReadTimeout  time.Duration `envconfig:"OKW_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"OKW_HTTP_WRITE_TIMEOUT" default:"30s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"OKW_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"OKW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OKW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OKW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OKW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"OKW_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"OKW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OKW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OKW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OKW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OKW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"OKW_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"OKW_JWT_ISSUER" default:"okuyami-watch"`
	ExpirationMinutes      int    `envconfig:"OKW_JWT_EXPIRATION_MINUTES" default:"1440"`
	RefreshTokenTTLMinutes int    `envconfig:"OKW_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"OKW_BCRYPT_COST" default:"12"`
}

type SessionConfig struct {
	CookieName   string `envconfig:"OKW_SESSION_COOKIE_NAME" default:"session_token"`
	CookieSecure bool   `envconfig:"OKW_SESSION_COOKIE_SECURE" default:"false"`
	CookieDomain string `envconfig:"OKW_SESSION_COOKIE_DOMAIN"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"OKW_AUTO_MIGRATE" default:"false"`
}
