package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	sharedConfig "github.com/hhgcare/hhg/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
	Consent   sharedConfig.ConsentConfig   `mapstructure:"consent"`
	Privacy   sharedConfig.PrivacyConfig   `mapstructure:"privacy"`
	Booking   sharedConfig.BookingConfig   `mapstructure:"booking"`
}

// Load reads configs/config.yaml (or configPath when given), overlays HHG_*
// environment variables and falls back to defaults. A missing config file is
// not an error; defaults plus env are enough to run against sqlite.
func Load(env string, configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("HHG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
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

// Validate rejects settings the core cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.RateLimit.Store {
	case "database", "redis":
	default:
		return fmt.Errorf("unsupported rate limit store %q", c.RateLimit.Store)
	}
	if c.Server.Mode == "release" && c.Privacy.MasterSecret == defaultMasterSecret {
		return fmt.Errorf("privacy.master_secret must be set in release mode")
	}
	if c.Booking.MaxProbes <= 0 {
		return fmt.Errorf("booking.max_probes must be positive")
	}
	return nil
}

const defaultMasterSecret = "change-me-in-production"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.timezone", "Asia/Ho_Chi_Minh")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "hhg_dev")
	v.SetDefault("database.sqlite_path", "hhg.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.issuer", "hhg")
	v.SetDefault("auth.jwt.access_exp_minutes", 60)

	v.SetDefault("ratelimit.store", "database")
	v.SetDefault("ratelimit.consent_limit", 30)
	v.SetDefault("ratelimit.consent_window_seconds", 60)
	v.SetDefault("ratelimit.api_limit", 120)
	v.SetDefault("ratelimit.api_window_seconds", 60)

	v.SetDefault("consent.token_ttl_hours", 24)

	v.SetDefault("privacy.master_secret", defaultMasterSecret)

	v.SetDefault("booking.number_prefix", "HHG")
	v.SetDefault("booking.max_probes", 1000)
	v.SetDefault("booking.max_create_attempts", 3)
}
