package config

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const minSecretLen = 32

type Config struct {
	Port      string `env:"PORT,      default=8000"`
	Host      string `env:"HOST,      default=0.0.0.0"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Redis   RedisConfig
	Flash   FlashConfig
}

// BackendConfig points at the external auth API.
type BackendConfig struct {
	URL          string        `env:"BACKEND_URL,           default=http://localhost:8080"`
	SessionPath  string        `env:"BACKEND_SESSION_PATH,  default=/token"`
	LoginPath    string        `env:"BACKEND_LOGIN_PATH,    default=/login"`
	RegisterPath string        `env:"BACKEND_REGISTER_PATH, default=/register"`
	HealthPath   string        `env:"BACKEND_HEALTH_PATH,   default=/health"`
	Timeout      time.Duration `env:"BACKEND_TIMEOUT,       default=10s"`
}

// RedisConfig is optional. An empty Addr keeps flash sessions in signed
// browser cookies.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// FlashConfig covers the browser session that carries flash messages.
// An empty Secret makes the app generate a key per process.
type FlashConfig struct {
	TTL    time.Duration `env:"FLASH_TTL, default=5m"`
	Secret string        `env:"SESSION_SECRET"`
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Production reports whether the service runs with production defaults.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if cfg.Backend.Timeout < 0 {
		return nil, fmt.Errorf("BACKEND_TIMEOUT must not be negative")
	}
	if cfg.Flash.TTL <= 0 {
		return nil, fmt.Errorf("FLASH_TTL must be positive")
	}
	if cfg.Flash.Secret != "" && len(cfg.Flash.Secret) < minSecretLen {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSecretLen)
	}
	return &cfg, nil
}
