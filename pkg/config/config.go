package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SOUNDRIFT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Storage       StorageConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SOUNDRIFT_APP_ENV" required:"true"`
	Port         string `envconfig:"SOUNDRIFT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SOUNDRIFT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOUNDRIFT_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"SOUNDRIFT_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"SOUNDRIFT_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"SOUNDRIFT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SOUNDRIFT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SOUNDRIFT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOUNDRIFT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	if strings.TrimSpace(db.DSN) == "" {
		return fmt.Errorf("database DSN is required")
	}
	if strings.Contains(db.DSN, "://") {
		if _, err := url.Parse(db.DSN); err != nil {
			return fmt.Errorf("invalid database DSN: %w", err)
		}
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"SOUNDRIFT_REDIS_URL"`
	Address      string        `envconfig:"SOUNDRIFT_REDIS_ADDR"`
	Password     string        `envconfig:"SOUNDRIFT_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOUNDRIFT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOUNDRIFT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOUNDRIFT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOUNDRIFT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOUNDRIFT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOUNDRIFT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint is configured at all; rate
// limiting degrades to a no-op without one.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"SOUNDRIFT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SOUNDRIFT_JWT_ISSUER" default:"soundrift"`
	ExpirationMinutes int    `envconfig:"SOUNDRIFT_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// Expiry returns the configured token lifetime.
func (j JWTConfig) Expiry() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SOUNDRIFT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SOUNDRIFT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SOUNDRIFT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SOUNDRIFT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SOUNDRIFT_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SOUNDRIFT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SOUNDRIFT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SOUNDRIFT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SOUNDRIFT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SOUNDRIFT_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SOUNDRIFT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type StorageConfig struct {
	Endpoint  string `envconfig:"SOUNDRIFT_STORAGE_ENDPOINT" required:"true"`
	AccessKey string `envconfig:"SOUNDRIFT_STORAGE_ACCESS_KEY" required:"true"`
	SecretKey string `envconfig:"SOUNDRIFT_STORAGE_SECRET_KEY" required:"true"`
	Bucket    string `envconfig:"SOUNDRIFT_STORAGE_BUCKET" required:"true"`
	UseSSL    bool   `envconfig:"SOUNDRIFT_STORAGE_USE_SSL" default:"true"`
	Region    string `envconfig:"SOUNDRIFT_STORAGE_REGION"`
}
