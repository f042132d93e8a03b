// Package config loads the tool's settings and the platform registry.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/jrschumacher/ltitoken/internal/logger"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "LTITOKEN"

// Config holds application configuration loaded from a config file or
// LTITOKEN_* environment variables.
type Config struct {
	PlatformsFile  string `mapstructure:"platforms_file" default:"platforms.json" validate:"required"`
	PrivateKeyFile string `mapstructure:"private_key_file" default:"id_rsa" validate:"required"`
	PublicKeyFile  string `mapstructure:"public_key_file" default:"id_rsa.pub" validate:"required"`

	// Seconds
	Timeout    int `mapstructure:"timeout" default:"15" validate:"gt=0"`
	Expiration int `mapstructure:"expiration" default:"60" validate:"gt=0"`

	// Logging
	LogLevel string `mapstructure:"log_level" default:"WARN" validate:"oneof=DEBUG INFO WARN ERROR"`
}

// Load reads configuration from path, or from ltitoken.yaml in the working
// directory or ~/.config/ltitoken when path is empty, then applies
// environment overrides and validates the result. A missing config file is
// fine unless path names it explicitly.
func Load(path string) (*Config, error) {
	cfg := Config{}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ltitoken")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ltitoken")
	}

	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to set struct defaults: %w", err)
	}

	// Bind env vars for each field
	typeOfCfg := reflect.TypeOf(cfg)
	for i := 0; i < typeOfCfg.NumField(); i++ {
		field := typeOfCfg.Field(i)
		key := field.Tag.Get("mapstructure")
		if key == "" {
			key = toSnakeCase(field.Name)
		}
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Debug("No config file found, using defaults and environment")
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	logger.Debug("Loaded config", "config", cfg.String())
	return &cfg, nil
}

// Validate checks cfg against its validate tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// TimeoutDuration returns Timeout as a duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// ExpirationDuration returns Expiration as a duration.
func (c *Config) ExpirationDuration() time.Duration {
	return time.Duration(c.Expiration) * time.Second
}

// KeyFiles returns the private and public key paths for p, falling back to
// the configured defaults where the platform entry names none.
func (c *Config) KeyFiles(p Platform) (privateKey, publicKey string) {
	privateKey, publicKey = c.PrivateKeyFile, c.PublicKeyFile
	if p.PrivateKey != "" {
		privateKey = p.PrivateKey
	}
	if p.PublicKey != "" {
		publicKey = p.PublicKey
	}
	return privateKey, publicKey
}

// String returns a one-line representation of the config.
func (c *Config) String() string {
	v := reflect.ValueOf(*c)
	t := reflect.TypeOf(*c)
	var sb strings.Builder
	sb.WriteString("Config{")
	for i := 0; i < t.NumField(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.Field(i).Name + ": " + fmt.Sprintf("%v", v.Field(i).Interface()))
	}
	sb.WriteString("}")
	return sb.String()
}

// toSnakeCase converts CamelCase to snake_case
func toSnakeCase(str string) string {
	runes := []rune(str)
	var out []rune
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				out = append(out, '_')
			}
		}
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}
