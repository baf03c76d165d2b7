package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Admin         AdminConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Media         MediaConfig
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
	Env          string `envconfig:"STOCKMONITOR_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOCKMONITOR_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"STOCKMONITOR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKMONITOR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig describes the candidate chain the storage connector resolves at
// startup. Defaults target local development only.
type DBConfig struct {
	DSN string `envconfig:"STOCKMONITOR_DB_DSN"`

	Host     string `envconfig:"STOCKMONITOR_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"STOCKMONITOR_DB_PORT" default:"5432"`
	User     string `envconfig:"STOCKMONITOR_DB_USER" default:"postgres"`
	Password string `envconfig:"STOCKMONITOR_DB_PASSWORD"`
	Name     string `envconfig:"STOCKMONITOR_DB_NAME" default:"stock_monitor"`
	SSLMode  string `envconfig:"STOCKMONITOR_DB_SSLMODE" default:"disable"`

	PoolSize        int           `envconfig:"STOCKMONITOR_DB_POOL_SIZE" default:"5"`
	MaxIdleConns    int           `envconfig:"STOCKMONITOR_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKMONITOR_DB_CONN_MAX_LIFETIME" default:"1h"`

	AcquireAttempts int           `envconfig:"STOCKMONITOR_DB_ACQUIRE_ATTEMPTS" default:"3"`
	AcquireBackoff  time.Duration `envconfig:"STOCKMONITOR_DB_ACQUIRE_BACKOFF" default:"1s"`

	// DisableFallback turns the ephemeral in-memory candidate off so callers
	// that must not tolerate data loss fail fast instead.
	DisableFallback bool `envconfig:"STOCKMONITOR_DB_DISABLE_FALLBACK" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKMONITOR_REDIS_URL"`
	Address      string        `envconfig:"STOCKMONITOR_REDIS_ADDR"`
	Password     string        `envconfig:"STOCKMONITOR_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOCKMONITOR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOCKMONITOR_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"STOCKMONITOR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKMONITOR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKMONITOR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint is configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"STOCKMONITOR_JWT_SECRET" default:"stock-monitor-secret-change-in-production"`
	Issuer            string `envconfig:"STOCKMONITOR_JWT_ISSUER" default:"stockmonitor"`
	ExpirationMinutes int    `envconfig:"STOCKMONITOR_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOCKMONITOR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STOCKMONITOR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STOCKMONITOR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STOCKMONITOR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOCKMONITOR_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig describes the single seeded administrative identity.
type AdminConfig struct {
	Username        string `envconfig:"STOCKMONITOR_ADMIN_USERNAME" default:"admin"`
	DefaultPassword string `envconfig:"STOCKMONITOR_ADMIN_DEFAULT_PASSWORD" default:"admin123"`
	Email           string `envconfig:"STOCKMONITOR_ADMIN_EMAIL" default:"admin@stockmonitor.com"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"STOCKMONITOR_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"STOCKMONITOR_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"STOCKMONITOR_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKMONITOR_AUTO_MIGRATE" default:"false"`
}

type MediaConfig struct {
	UploadDir   string `envconfig:"STOCKMONITOR_UPLOAD_DIR" default:"static/uploads"`
	MaxUploadMB int    `envconfig:"STOCKMONITOR_MAX_UPLOAD_MB" default:"16"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range []string{EnvDBHost, EnvDBUser, EnvDBName} {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

// Validate enforces the bounds the storage connector relies on.
func (db DBConfig) Validate() error {
	if db.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	if db.PoolSize <= 0 {
		return fmt.Errorf("pool size must be positive, got %d", db.PoolSize)
	}
	if db.AcquireAttempts <= 0 {
		return fmt.Errorf("acquire attempts must be positive, got %d", db.AcquireAttempts)
	}
	if db.AcquireBackoff < 0 {
		return fmt.Errorf("acquire backoff must not be negative, got %s", db.AcquireBackoff)
	}
	return nil
}
