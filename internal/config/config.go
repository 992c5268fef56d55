package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the framing service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring and API server.
// - Workers: The number of concurrent workers draining the job queue.
// - Interval: The duration between job queue polls.
// - Provider: Elevation provider settings.
// - Cache: Elevation cache settings; an empty address disables caching.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env      string         `mapstructure:"env"`         // Env is the current environment: local, development, production.
	Port     int            `mapstructure:"health_port"` // Port is the monitoring and API server port.
	Workers  int            `mapstructure:"workers"`     // The number of concurrent workers for processing jobs.
	Interval time.Duration  `mapstructure:"interval"`    // The duration between processing intervals.
	Provider ProviderConfig `mapstructure:"provider"`    // Provider holds the elevation provider configuration.
	Cache    CacheConfig    `mapstructure:"cache"`       // Cache holds the elevation cache configuration.
	Database PostgresConfig `mapstructure:"database"`    // Database holds the postgres database configuration.
}

// ProviderConfig selects and configures the elevation provider.
type ProviderConfig struct {
	Type      string `mapstructure:"type"`       // Type is one of google, open-elevation, flat.
	APIKey    string `mapstructure:"key"`        // APIKey is required for Google.
	BaseURL   string `mapstructure:"base_url"`   // BaseURL overrides the Open-Elevation endpoint.
	RateLimit int    `mapstructure:"rate_limit"` // RateLimit is the request budget per second shared by all workers.
}

// CacheConfig holds the Valkey elevation cache settings.
type CacheConfig struct {
	Addr string        `mapstructure:"addr"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`     // Host is the database server address.
	Port     string `mapstructure:"port"`     // Port is the database server port.
	User     string `mapstructure:"user"`     // User is the database user.
	Password string `mapstructure:"password"` // Password is the database user's password.
	Name     string `mapstructure:"name"`     // Name is the name of the database.
}

// MustLoad loads the configuration from the environment and an optional YAML
// file named by ARGUS_CONFIG_FILE, and panics when a value cannot be parsed.
// Environment variables take precedence over the file.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	setDefaults(vpr)

	vpr.SetEnvPrefix("ARGUS")
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()
	bindDatabaseEnv(vpr)

	if path := vpr.GetString("config_file"); path != "" {
		vpr.SetConfigFile(path)
		if err := vpr.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	interval, err := parseDuration(vpr.GetString("interval"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	healthPort, err := parseInt(vpr, "health_port")
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := parseInt(vpr, "workers")
	if err != nil || workers < 1 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	rateLimit, err := parseInt(vpr, "provider.rate_limit")
	if err != nil {
		panic("failed to parse provider rate limit from configuration")
	}

	cacheTTL, err := parseDuration(vpr.GetString("cache.ttl"))
	if err != nil {
		panic("failed to parse cache ttl from configuration")
	}

	// Valkey expiries have one second resolution; a shorter TTL rejects every write.
	if vpr.GetString("cache.addr") != "" && cacheTTL < time.Second {
		panic("cache ttl must be at least 1s when the cache is enabled")
	}

	return &Config{
		Env:      vpr.GetString("env"),
		Port:     healthPort,
		Workers:  workers,
		Interval: interval,
		Provider: ProviderConfig{
			Type:      vpr.GetString("provider.type"),
			APIKey:    vpr.GetString("provider.key"),
			BaseURL:   vpr.GetString("provider.base_url"),
			RateLimit: rateLimit,
		},
		Cache: CacheConfig{
			Addr: vpr.GetString("cache.addr"),
			TTL:  cacheTTL,
		},
		Database: PostgresConfig{
			Host:     vpr.GetString("database.host"),
			Port:     vpr.GetString("database.port"),
			User:     vpr.GetString("database.user"),
			Password: vpr.GetString("database.password"),
			Name:     vpr.GetString("database.name"),
		},
	}
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("env", "production")
	vpr.SetDefault("health_port", "8080")
	vpr.SetDefault("workers", "10")
	vpr.SetDefault("interval", "1m")
	vpr.SetDefault("provider.type", "flat")
	vpr.SetDefault("provider.rate_limit", "50")
	vpr.SetDefault("cache.ttl", "720h")
	vpr.SetDefault("database.port", "5432")
}

// bindDatabaseEnv reads database settings from ARGUS_DATABASE_* first and
// falls back to the plain DB_* variables.
func bindDatabaseEnv(vpr *viper.Viper) {
	bindings := map[string]string{
		"database.host":     "DB_HOST",
		"database.port":     "DB_PORT",
		"database.user":     "DB_USERNAME",
		"database.password": "DB_PASSWORD",
		"database.name":     "DB_NAME",
	}
	for key, env := range bindings {
		_ = vpr.BindEnv(key, "ARGUS_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}
}

func parseInt(vpr *viper.Viper, key string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(vpr.GetString(key)))
}

func parseDuration(value string) (time.Duration, error) {
	return time.ParseDuration(strings.TrimSpace(value))
}
