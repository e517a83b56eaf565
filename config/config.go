// Package config loads server settings from an optional .env file, the
// environment and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Log     LogConfig
	Redis   RedisConfig
	Holiday HolidayConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	DBPath      string
	CORSOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// RedisConfig is optional; an empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// HolidayConfig controls the national-holiday source.
// An empty APIURL uses the built-in static table only.
type HolidayConfig struct {
	APIURL           string
	APITimeout       time.Duration
	CacheTTL         time.Duration
	PrefetchInterval time.Duration
}

// Load reads envFile (ignored when missing), then the environment, then
// args as command-line flags.
func Load(envFile string, args []string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	config.App = AppConfig{
		Port:        appPort,
		DBPath:      getEnv("DB_PATH", "wage.db"),
		CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
	}

	config.Log = LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	apiTimeout, err := time.ParseDuration(getEnv("HOLIDAY_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_API_TIMEOUT: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("HOLIDAY_CACHE_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_CACHE_TTL: %w", err)
	}
	prefetch, err := time.ParseDuration(getEnv("PREFETCH_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PREFETCH_INTERVAL: %w", err)
	}
	config.Holiday = HolidayConfig{
		APIURL:           getEnv("HOLIDAY_API_URL", ""),
		APITimeout:       apiTimeout,
		CacheTTL:         cacheTTL,
		PrefetchInterval: prefetch,
	}

	if err := config.parseFlags(args); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) parseFlags(args []string) error {
	flags := flag.NewFlagSet("server", flag.ContinueOnError)
	flags.IntVar(&c.App.Port, "port", c.App.Port, "HTTP server port")
	flags.StringVar(&c.App.DBPath, "db", c.App.DBPath, "SQLite database path (\":memory:\" for in-memory)")
	flags.StringVar(&c.Log.Level, "log-level", c.Log.Level, "log level: debug, info, warn, error")
	flags.StringVar(&c.Log.Format, "log-format", c.Log.Format, "log format: json or console")
	flags.StringVar(&c.Redis.Addr, "redis", c.Redis.Addr, "Redis address (empty disables Redis)")
	flags.StringVar(&c.Holiday.APIURL, "holiday-api", c.Holiday.APIURL, "holiday API base URL (empty uses the static table)")
	flags.DurationVar(&c.Holiday.PrefetchInterval, "prefetch", c.Holiday.PrefetchInterval, "holiday prefetch interval (0 disables)")
	return flags.Parse(args)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT out of range: %d", c.App.Port)
	}
	if c.App.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format)
	}
	if c.Holiday.APITimeout <= 0 {
		return fmt.Errorf("HOLIDAY_API_TIMEOUT must be positive")
	}
	if c.Holiday.PrefetchInterval < 0 {
		return fmt.Errorf("PREFETCH_INTERVAL must not be negative")
	}
	return nil
}

// RedisEnabled reports whether a Redis address is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
