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
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"PANELTRACK_APP_ENV" required:"true"`
	Port         string `envconfig:"PANELTRACK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PANELTRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PANELTRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PANELTRACK_DB_DSN"`
	Driver string `envconfig:"PANELTRACK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PANELTRACK_DB_HOST"`
	LegacyPort     int    `envconfig:"PANELTRACK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PANELTRACK_DB_USER"`
	LegacyPassword string `envconfig:"PANELTRACK_DB_PASSWORD"`
	LegacyName     string `envconfig:"PANELTRACK_DB_NAME"`
	LegacySSLMode  string `envconfig:"PANELTRACK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PANELTRACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PANELTRACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PANELTRACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PANELTRACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PANELTRACK_REDIS_URL"`
	Address      string        `envconfig:"PANELTRACK_REDIS_ADDR"`
	Password     string        `envconfig:"PANELTRACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PANELTRACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PANELTRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PANELTRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PANELTRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PANELTRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PANELTRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"PANELTRACK_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"PANELTRACK_JWT_ISSUER" required:"true"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PANELTRACK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PANELTRACK_AUTO_MIGRATE" default:"false"`
}

type CronConfig struct {
	Interval         time.Duration `envconfig:"PANELTRACK_CRON_INTERVAL" default:"24h"`
	LockTTL          time.Duration `envconfig:"PANELTRACK_CRON_LOCK_TTL" default:"25h"`
	ReminderLeadDays int           `envconfig:"PANELTRACK_CRON_REMINDER_LEAD_DAYS" default:"3"`
	OverdueGraceDays int           `envconfig:"PANELTRACK_CRON_OVERDUE_GRACE_DAYS" default:"7"`
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
