package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
}

type AppConfig struct {
	AppName          string   `yaml:"name"`
	Environment      string   `yaml:"env"`
	HTTPPort         string   `yaml:"http_port"`
	CORSAllowOrigins []string `yaml:"cors_allow_origins"`
	MigrationsDir    string   `yaml:"migrations_dir"`
	AutoMigrate      bool     `yaml:"auto_migrate"`
}

type DatabaseConfig struct {
	DBHost     string `yaml:"host"`
	DBPort     string `yaml:"port"`
	DBName     string `yaml:"name"`
	DBUser     string `yaml:"user"`
	DBPassword string `yaml:"password"`
	DBSSLMode  string `yaml:"ssl_mode"`

	ConnectTimeout        time.Duration `yaml:"connect_timeout"`
	PoolMaxConns          int32         `yaml:"pool_max_conns"`
	PoolMinConns          int32         `yaml:"pool_min_conns"`
	PoolMaxConnLifetime   time.Duration `yaml:"pool_max_conn_lifetime"`
	PoolMaxConnIdleTime   time.Duration `yaml:"pool_max_conn_idle_time"`
	PoolHealthCheckPeriod time.Duration `yaml:"pool_health_check_period"`
}

type JWTConfig struct {
	Secret    string        `yaml:"secret"`
	ExpiresIn time.Duration `yaml:"expires_in"`
}

type RedisConfig struct {
	Host     string        `yaml:"host"`
	Port     string        `yaml:"port"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

const (
	defaultJWTExpiresIn  = 24 * time.Hour
	defaultRedisTTL      = 600 * time.Second
	defaultMigrationsDir = "migrations"
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variable")
)

// Load builds the process configuration. Values come from CONFIG_FILE (YAML)
// when set, then from the environment, which wins over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	var invalid []string
	str := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	dur := func(dst *time.Duration, key string) {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return
		}
		*dst = d
	}
	seconds := func(dst *time.Duration, key string) {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			invalid = append(invalid, key)
			return
		}
		*dst = time.Duration(v) * time.Second
	}
	int32v := func(dst *int32, key string) {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return
		}
		*dst = int32(v)
	}
	intv := func(dst *int, key string) {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return
		}
		*dst = v
	}
	boolv := func(dst *bool, key string) {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return
		}
		*dst = v
	}

	str(&cfg.App.AppName, "APP_NAME")
	str(&cfg.App.Environment, "APP_ENV")
	str(&cfg.App.HTTPPort, "HTTP_PORT")
	str(&cfg.App.MigrationsDir, "MIGRATIONS_DIR")
	boolv(&cfg.App.AutoMigrate, "AUTO_MIGRATE")
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOW_ORIGINS")); raw != "" {
		cfg.App.CORSAllowOrigins = splitList(raw)
	}

	str(&cfg.Database.DBHost, "DB_HOST")
	str(&cfg.Database.DBPort, "DB_PORT")
	str(&cfg.Database.DBName, "DB_NAME")
	str(&cfg.Database.DBUser, "DB_USER")
	str(&cfg.Database.DBPassword, "DB_PASSWORD")
	str(&cfg.Database.DBSSLMode, "DB_SSL_MODE")
	dur(&cfg.Database.ConnectTimeout, "DB_CONNECT_TIMEOUT")
	int32v(&cfg.Database.PoolMaxConns, "DB_POOL_MAX_CONNS")
	int32v(&cfg.Database.PoolMinConns, "DB_POOL_MIN_CONNS")
	dur(&cfg.Database.PoolMaxConnLifetime, "DB_POOL_MAX_CONN_LIFETIME")
	dur(&cfg.Database.PoolMaxConnIdleTime, "DB_POOL_MAX_CONN_IDLE_TIME")
	dur(&cfg.Database.PoolHealthCheckPeriod, "DB_POOL_HEALTH_CHECK_PERIOD")

	str(&cfg.JWT.Secret, "JWT_SECRET")
	dur(&cfg.JWT.ExpiresIn, "JWT_EXPIRES_IN")

	str(&cfg.Redis.Host, "REDIS_HOST")
	str(&cfg.Redis.Port, "REDIS_PORT")
	str(&cfg.Redis.Password, "REDIS_PASSWORD")
	intv(&cfg.Redis.DB, "REDIS_DB")
	seconds(&cfg.Redis.TTL, "REDIS_TTL")

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	var missing []string
	req := func(v, key string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
	}
	req(cfg.App.AppName, "APP_NAME")
	req(cfg.App.Environment, "APP_ENV")
	req(cfg.App.HTTPPort, "HTTP_PORT")
	req(cfg.JWT.Secret, "JWT_SECRET")
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.JWT.ExpiresIn <= 0 {
		c.JWT.ExpiresIn = defaultJWTExpiresIn
	}
	if c.Redis.TTL <= 0 {
		c.Redis.TTL = defaultRedisTTL
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == "" {
		c.Redis.Port = "6379"
	}
	if c.Database.DBSSLMode == "" {
		c.Database.DBSSLMode = "disable"
	}
	if c.App.MigrationsDir == "" {
		c.App.MigrationsDir = defaultMigrationsDir
	}
	if len(c.App.CORSAllowOrigins) == 0 {
		c.App.CORSAllowOrigins = []string{"*"}
	}
}

// DSN returns a URL-style connection string accepted by both pgx and
// golang-migrate.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.DBUser, d.DBPassword),
		Host:     d.DBHost + ":" + d.DBPort,
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.DBSSLMode),
	}
	return u.String()
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
