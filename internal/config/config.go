package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
	// Mode is "development" or "release". Development enables the
	// console logger, panic detail in 500 responses, and the
	// forgot-password devToken echo.
	Mode string `yaml:"mode"`
}

type JWTConfig struct {
	Secret   string `yaml:"secret"`
	TTLHours int    `yaml:"ttl_hours"`
}

type ResetConfig struct {
	CodeTTLMinutes int `yaml:"code_ttl_minutes"`
}

type StaticConfig struct {
	Dir string `yaml:"dir"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	JWT    JWTConfig    `yaml:"jwt"`
	Reset  ResetConfig  `yaml:"reset"`
	Static StaticConfig `yaml:"static"`
}

// Load reads config.yaml if present, fills defaults, then applies
// environment variable overrides. The stores need no external
// endpoints, so a missing file is not fatal.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Port: ":3000", Mode: "release"},
		JWT:    JWTConfig{Secret: "change-this-secret-in-production", TTLHours: 24},
		Reset:  ResetConfig{CodeTTLMinutes: 15},
		Static: StaticConfig{Dir: "public"},
	}

	if path == "" {
		path = "config.yaml"
	}
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	overrideFromEnv(cfg)
	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if mode := os.Getenv("APP_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if ttl := os.Getenv("JWT_TTL_HOURS"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil && n > 0 {
			cfg.JWT.TTLHours = n
		}
	}
	if ttl := os.Getenv("RESET_CODE_TTL_MINUTES"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil && n > 0 {
			cfg.Reset.CodeTTLMinutes = n
		}
	}
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		cfg.Static.Dir = dir
	}
}

// Development reports whether the service runs in development mode.
func (c *Config) Development() bool {
	return c.Server.Mode == "development"
}

// TokenTTL returns the session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTLHours) * time.Hour
}

// ResetCodeTTL returns the password reset code lifetime.
func (c *Config) ResetCodeTTL() time.Duration {
	return time.Duration(c.Reset.CodeTTLMinutes) * time.Minute
}
