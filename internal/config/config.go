// Package config loads service configuration from defaults, an optional
// config.yaml, a .env file and ASSETDESK_ environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ASSETDESK"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Mail      MailConfig      `mapstructure:"mail"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Environment  string        `mapstructure:"environment"` // dev, prod
	Origin       string        `mapstructure:"origin"`      // public URL used in reset links
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c ServerConfig) IsProduction() bool {
	return c.Environment == "prod"
}

type StorageConfig struct {
	Driver        string      `mapstructure:"driver"` // memory, postgres, redis
	DatabaseURL   string      `mapstructure:"database_url"`
	MigrationsDir string      `mapstructure:"migrations_dir"`
	AutoMigrate   bool        `mapstructure:"auto_migrate"`
	Redis         RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	JWTExpiry         time.Duration `mapstructure:"jwt_expiry"`
	ResetTokenTTL     time.Duration `mapstructure:"reset_token_ttl"`
	OAuthGitHubID     string        `mapstructure:"oauth_github_id"`
	OAuthGitHubSecret string        `mapstructure:"oauth_github_secret"`
	OAuthGoogleID     string        `mapstructure:"oauth_google_id"`
	OAuthGoogleSecret string        `mapstructure:"oauth_google_secret"`
	OAuthCallbackURL  string        `mapstructure:"oauth_callback_url"`
}

type MailConfig struct {
	Driver   string `mapstructure:"driver"` // log, http
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
	From     string `mapstructure:"from"`
}

type RateLimitConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Window   time.Duration `mapstructure:"window"`
}

// Load reads configuration. A missing config file or .env file is not an error.
func Load() (*Config, error) {
	// .env never overrides variables already present in the environment
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "redis":
	case "postgres":
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("storage.database_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver: %s", c.Storage.Driver)
	}

	switch c.Mail.Driver {
	case "log":
	case "http":
		if c.Mail.Endpoint == "" {
			return fmt.Errorf("mail.endpoint is required for the http driver")
		}
	default:
		return fmt.Errorf("unknown mail driver: %s", c.Mail.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is not set")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.environment", "dev")
	v.SetDefault("server.origin", "http://localhost:5173")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.migrations_dir", "./migrations")
	v.SetDefault("storage.auto_migrate", false)
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "assetdesk")

	v.SetDefault("auth.jwt_expiry", "120h")
	v.SetDefault("auth.reset_token_ttl", "1h")
	v.SetDefault("auth.oauth_callback_url", "http://localhost:8080")

	v.SetDefault("mail.driver", "log")
	v.SetDefault("mail.from", "no-reply@assetdesk.local")

	v.SetDefault("ratelimit.attempts", 10)
	v.SetDefault("ratelimit.window", "5m")
}

// bindEnv registers keys without defaults so AutomaticEnv can see them on Unmarshal.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"storage.database_url",
		"storage.redis.password",
		"auth.jwt_secret",
		"auth.oauth_github_id",
		"auth.oauth_github_secret",
		"auth.oauth_google_id",
		"auth.oauth_google_secret",
		"mail.endpoint",
		"mail.api_key",
	} {
		_ = v.BindEnv(key)
	}
}
