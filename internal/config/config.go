// Package config wraps viper with nil-safe accessors and the terroir
// defaults.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides: server.port is read
// from TERROIR_SERVER_PORT.
const EnvPrefix = "TERROIR"

// Config provides read access to configuration values. A Config built
// from a nil viper returns zero values.
type Config struct {
	v *viper.Viper
}

// New wraps an existing viper instance.
func New(v *viper.Viper) *Config {
	return &Config{v: v}
}

// Load reads configuration from defaults, an optional YAML file at path,
// and TERROIR_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
		return New(v), nil
	}

	v.SetConfigName("terroir")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/terroir")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return New(v), nil
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 50.0)
	v.SetDefault("server.rate_burst", 100)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.swagger", true)
	v.SetDefault("server.cache_ttl", "5m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("metrics.enabled", true)
}

// Viper exposes the underlying instance for flag binding. May be nil.
func (c *Config) Viper() *viper.Viper {
	return c.v
}

func (c *Config) GetString(key string) string {
	if c.v == nil {
		return ""
	}
	return c.v.GetString(key)
}

func (c *Config) GetInt(key string) int {
	if c.v == nil {
		return 0
	}
	return c.v.GetInt(key)
}

func (c *Config) GetFloat64(key string) float64 {
	if c.v == nil {
		return 0
	}
	return c.v.GetFloat64(key)
}

func (c *Config) GetBool(key string) bool {
	if c.v == nil {
		return false
	}
	return c.v.GetBool(key)
}

func (c *Config) GetDuration(key string) time.Duration {
	if c.v == nil {
		return 0
	}
	return c.v.GetDuration(key)
}

func (c *Config) GetStringSlice(key string) []string {
	if c.v == nil {
		return nil
	}
	return c.v.GetStringSlice(key)
}

// Addr returns host:port for the HTTP server. IPv6 hosts are bracketed.
func (c *Config) Addr() string {
	host := c.GetString("server.host")
	port := c.GetInt("server.port")
	if port == 0 {
		port = 8080
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
