package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	MaxRetries  int
	DialTimeout int
	Timeout     int
	Prefix      string
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type LogConfig struct {
	Level  string
	Format string
}

type RateLimitConfig struct {
	Capacity int
	Window   time.Duration
}

type AppConfig struct {
	Port           string
	RequestTimeout time.Duration
	TrustProxy     bool
	AllowedOrigins []string
	Log            LogConfig
	RateLimit      RateLimitConfig
	Redis          RedisConfig
}

var defaults = map[string]any{
	"APP_PORT":             "8010",
	"REQUEST_TIMEOUT":      "30s",
	"TRUST_PROXY":          false,
	"CORS_ALLOWED_ORIGINS": "",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
	"RATE_LIMIT_CAPACITY":  20,
	"RATE_LIMIT_WINDOW":    "1m",
	"REDIS_ADDR":           "",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"REDIS_MAX_RETRIES":    3,
	"REDIS_DIAL_TIMEOUT":   5,
	"REDIS_TIMEOUT":        2,
	"REDIS_PREFIX":         "cotizador_",
}

// Load reads the configuration from the environment. Call godotenv.Load
// first to pick up a local .env file.
func Load() AppConfig {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	return AppConfig{
		Port:           v.GetString("APP_PORT"),
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		TrustProxy:     v.GetBool("TRUST_PROXY"),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		RateLimit: RateLimitConfig{
			Capacity: v.GetInt("RATE_LIMIT_CAPACITY"),
			Window:   v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Redis: RedisConfig{
			Addr:        v.GetString("REDIS_ADDR"),
			Password:    v.GetString("REDIS_PASSWORD"),
			DB:          v.GetInt("REDIS_DB"),
			MaxRetries:  v.GetInt("REDIS_MAX_RETRIES"),
			DialTimeout: v.GetInt("REDIS_DIAL_TIMEOUT"),
			Timeout:     v.GetInt("REDIS_TIMEOUT"),
			Prefix:      v.GetString("REDIS_PREFIX"),
		},
	}
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
