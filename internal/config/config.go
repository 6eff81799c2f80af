package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	pkglogger "github.com/amchigale/konkani-dictionary/pkg/logger"
	"gopkg.in/yaml.v3"
)

// DefaultJWTSecret is only acceptable outside production
const DefaultJWTSecret = "change-me-konkani-dictionary-dev-secret"

// Config is the resolved application configuration
type Config struct {
	Env           string              `yaml:"-"`
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	JWT           JWTConfig           `yaml:"jwt"`
	Redis         RedisConfig         `yaml:"redis"`
	CORS          CORSConfig          `yaml:"cors"`
	Agent         AgentConfig         `yaml:"agent"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Storage       StorageConfig       `yaml:"storage"`
}

type ServerConfig struct {
	Port     int    `yaml:"port"`
	Mode     string `yaml:"mode"`
	BasePath string `yaml:"base_path"`
	Version  string `yaml:"version"`
}

type DatabaseConfig struct {
	Driver       string `yaml:"driver"` // postgres | mysql
	URL          string `yaml:"url"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	SSLMode      string `yaml:"ssl_mode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	// seconds
	ConnMaxIdleTime int `yaml:"conn_max_idle_time"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"` // minutes
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"` // comma separated
}

type AgentConfig struct {
	APIKeys      []string `yaml:"api_keys"`
	RateMax      int      `yaml:"rate_max"`
	RateWindowMs int      `yaml:"rate_window_ms"`
}

type ElasticsearchConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Addresses []string `yaml:"addresses"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	Index     string   `yaml:"index"`
}

type StorageConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	CDNURL          string `yaml:"cdn_url"`
	BasePath        string `yaml:"base_path"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Env: "local",
		Server: ServerConfig{
			Port:     3002,
			Mode:     "debug",
			BasePath: "/api",
			Version:  "1.0.0",
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			User:            "konkani_dev",
			Name:            "konkani_dictionary",
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxIdleTime: 30,
		},
		JWT: JWTConfig{
			Secret:    DefaultJWTSecret,
			ExpiresIn: 24 * 60,
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			PoolSize: 10,
		},
		CORS: CORSConfig{
			AllowOrigins: "http://localhost:3002,https://milind-kopikar.github.io",
		},
		Agent: AgentConfig{
			RateMax:      60,
			RateWindowMs: 60000,
		},
		Elasticsearch: ElasticsearchConfig{
			Index: "dictionary_entries",
		},
	}
}

// Load reads the YAML file at path (a missing file is not an error),
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		pkglogger.Warn("config file %s not found, using defaults", path)
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Env = v
	}
	setInt(&c.Server.Port, "PORT")
	setString(&c.Server.Mode, "GIN_MODE")

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Database.Host, "PGHOST", "DB_HOST")
	setInt(&c.Database.Port, "PGPORT", "DB_PORT")
	setString(&c.Database.User, "PGUSER", "DB_USER")
	setString(&c.Database.Password, "PGPASSWORD", "DB_PASSWORD")
	setString(&c.Database.Name, "PGDATABASE", "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSL_MODE")
	setInt(&c.Database.MaxOpenConns, "DB_POOL_MAX")

	setString(&c.JWT.Secret, "JWT_SECRET")
	setInt(&c.JWT.ExpiresIn, "JWT_EXPIRES_IN")

	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Enabled = true
		c.Redis.Host = v
	}
	setInt(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	if v := os.Getenv("FRONTEND_URL"); v != "" {
		c.CORS.AllowOrigins = strings.TrimRight(c.CORS.AllowOrigins+","+v, ",")
	}

	if v := os.Getenv("AGENT_API_KEYS"); v != "" {
		c.Agent.APIKeys = SplitAndTrim(v, ",")
	}
	setInt(&c.Agent.RateMax, "AGENT_RATE_MAX")
	setInt(&c.Agent.RateWindowMs, "AGENT_RATE_WINDOW_MS")

	if v := os.Getenv("ELASTICSEARCH_URL"); v != "" {
		c.Elasticsearch.Enabled = true
		c.Elasticsearch.Addresses = SplitAndTrim(v, ",")
	}

	if v := os.Getenv("S3_BUCKET"); v != "" {
		c.Storage.Enabled = true
		c.Storage.Bucket = v
	}
	setString(&c.Storage.Endpoint, "S3_ENDPOINT")
	setString(&c.Storage.Region, "S3_REGION")
	setString(&c.Storage.AccessKeyID, "S3_ACCESS_KEY_ID")
	setString(&c.Storage.SecretAccessKey, "S3_SECRET_ACCESS_KEY")
}

// Validate rejects configurations that cannot run safely
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.IsProduction() && (c.JWT.Secret == "" || c.JWT.Secret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.Agent.RateMax <= 0 || c.Agent.RateWindowMs <= 0 {
		return errors.New("agent rate limit must be positive")
	}
	return nil
}

// IsDevelopment reports whether the app runs in a local/dev environment
func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "local" || c.Env == "development" || c.Env == "dev"
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// GetDSN builds the driver-specific connection string. DATABASE_URL wins when set.
func (d DatabaseConfig) GetDSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Driver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.Name)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// Provider guesses the hosting provider from the connection URL (logging only)
func (d DatabaseConfig) Provider() string {
	switch {
	case d.URL == "":
		return "local"
	case strings.Contains(d.URL, "railway"):
		return "railway"
	case strings.Contains(d.URL, "cloudsql"), strings.Contains(d.URL, "google"):
		return "google-cloud-sql"
	case strings.Contains(d.URL, "azure"), strings.Contains(d.URL, "database.windows.net"):
		return "azure"
	case strings.Contains(d.URL, "rds.amazonaws.com"):
		return "aws-rds"
	default:
		return "custom"
	}
}

// LogResolved logs the resolved configuration without secrets
func LogResolved(c *Config) {
	pkglogger.GetLogger().Info().
		Str("env", c.Env).
		Int("port", c.Server.Port).
		Str("base_path", c.Server.BasePath).
		Str("db_driver", c.Database.Driver).
		Str("db_provider", c.Database.Provider()).
		Bool("db_url_present", c.Database.URL != "").
		Int("db_pool_max", c.Database.MaxOpenConns).
		Bool("redis", c.Redis.Enabled).
		Bool("elasticsearch", c.Elasticsearch.Enabled).
		Bool("storage", c.Storage.Enabled).
		Int("agent_keys", len(c.Agent.APIKeys)).
		Int("jwt_expires_min", c.JWT.ExpiresIn).
		Msg("config resolved")
}

// SplitAndTrim splits s by sep and drops empty items
func SplitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func setString(dst *string, keys ...string) {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			*dst = v
			return
		}
	}
}

func setInt(dst *int, keys ...string) {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
				return
			}
		}
	}
}
