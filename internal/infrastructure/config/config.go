package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// MaxUploadSize caps the document upload on /verify, in bytes.
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE, default=10485760"`

	Lawbot  LawbotConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type LawbotConfig struct {
	BaseURL string        `env:"LAWBOT_API_URL,     default=http://localhost:5000"`
	Timeout time.Duration `env:"LAWBOT_API_TIMEOUT, default=60s"`
}

type SessionConfig struct {
	Backend       string        `env:"SESSION_BACKEND, default=redis"`
	CookieName    string        `env:"SESSION_COOKIE,  default=lawbot_session"`
	TTL           time.Duration `env:"SESSION_TTL,     default=168h"`
	SecureCookies bool          `env:"SECURE_COOKIES,  default=false"`
}

// MongoConfig is optional; an empty URI disables contact message storage.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=lawbot"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would only fail later at first use.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Lawbot.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: LAWBOT_API_URL must be an absolute URL, got %q", c.Lawbot.BaseURL)
	}
	switch strings.ToLower(c.Session.Backend) {
	case SessionBackendRedis, SessionBackendMemory:
	default:
		return fmt.Errorf("config: SESSION_BACKEND must be %q or %q, got %q", SessionBackendRedis, SessionBackendMemory, c.Session.Backend)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("config: SESSION_COOKIE must not be empty")
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("config: MAX_UPLOAD_SIZE must be positive")
	}
	return nil
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
