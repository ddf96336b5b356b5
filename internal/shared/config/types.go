package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // mysql | sqlite
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

// GetDSN returns the MySQL DSN. Times are parsed as UTC; the business
// timezone only matters for display.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_unicode_ci&parseTime=true&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

func (d *DatabaseConfig) IsSQLite() bool {
	return d.Driver == "sqlite"
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

// RateLimitConfig configures the fixed-window limiter and the limits the HTTP
// layer applies with it.
type RateLimitConfig struct {
	Store                string `mapstructure:"store"` // database | redis
	ConsentLimit         int    `mapstructure:"consent_limit"`
	ConsentWindowSeconds int    `mapstructure:"consent_window_seconds"`
	APILimit             int    `mapstructure:"api_limit"`
	APIWindowSeconds     int    `mapstructure:"api_window_seconds"`
}

func (r *RateLimitConfig) ConsentWindow() time.Duration {
	return time.Duration(r.ConsentWindowSeconds) * time.Second
}

func (r *RateLimitConfig) APIWindow() time.Duration {
	return time.Duration(r.APIWindowSeconds) * time.Second
}

type ConsentConfig struct {
	TokenTTLHours int `mapstructure:"token_ttl_hours"`
}

func (c *ConsentConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

type PrivacyConfig struct {
	// MasterSecret seeds both the phone-hash key and the key-encryption key.
	// Rotating it orphans every stored phone hash and wrapped key.
	MasterSecret string `mapstructure:"master_secret"`
}

type BookingConfig struct {
	NumberPrefix      string `mapstructure:"number_prefix"`
	MaxProbes         int    `mapstructure:"max_probes"`
	MaxCreateAttempts int    `mapstructure:"max_create_attempts"`
}
