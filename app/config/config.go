// Package config loads server settings.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// PICSHARE_* environment variables, then command-line flags that were set
// explicitly. The result is validated before use.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PICSHARE_"

// DefaultSecret is only suitable for local development.
const DefaultSecret = "picshare-development-secret"

// Config is the complete server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr" validate:"required"`

	// DataDir holds the badger database.
	DataDir string `yaml:"data_dir" validate:"required"`

	// UploadDir holds uploaded images.
	UploadDir string `yaml:"upload_dir" validate:"required"`

	// PublicURL is the externally visible base URL used in image links.
	PublicURL string `yaml:"public_url" validate:"required,url"`

	// JWTSecret signs session tokens.
	JWTSecret string `yaml:"jwt_secret" validate:"required,min=8"`

	// TokenTTL is how long a session token stays valid.
	TokenTTL time.Duration `yaml:"token_ttl" validate:"gt=0"`

	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string `yaml:"cors_origins" validate:"dive,required"`

	// NatsURL enables notification events when non-empty.
	NatsURL string `yaml:"nats_url"`

	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`

	// BackupDir is where `backup` writes when no file is given.
	BackupDir string `yaml:"backup_dir" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Addr:        ":5000",
		DataDir:     "data/badger",
		UploadDir:   "uploads",
		PublicURL:   "http://localhost:5000",
		JWTSecret:   DefaultSecret,
		TokenTTL:    7 * 24 * time.Hour,
		CORSOrigins: []string{"*"},
		LogLevel:    "info",
		LogFormat:   "text",
		BackupDir:   "backups",
	}
}

// Load builds the configuration from the file at path (optional), the
// environment and fs (optional), then validates it.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decodeYAML(data); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if fs != nil {
		if err := cfg.applyFlags(fs); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) decodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Addr = getEnv("ADDR", c.Addr)
	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.UploadDir = getEnv("UPLOAD_DIR", c.UploadDir)
	c.PublicURL = getEnv("PUBLIC_URL", c.PublicURL)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.NatsURL = getEnv("NATS_URL", c.NatsURL)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.BackupDir = getEnv("BACKUP_DIR", c.BackupDir)

	if v := os.Getenv(EnvPrefix + "CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := os.Getenv(EnvPrefix + "TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTOKEN_TTL: %w", EnvPrefix, err)
		}
		c.TokenTTL = d
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
