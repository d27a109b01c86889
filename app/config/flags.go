package config

import (
	"github.com/spf13/pflag"
)

// RegisterFlags defines the server flags on fs with the built-in defaults.
// Only flags the user actually sets override file and environment values.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("addr", d.Addr, "HTTP listen address")
	fs.String("data-dir", d.DataDir, "badger database directory")
	fs.String("upload-dir", d.UploadDir, "directory for uploaded images")
	fs.String("public-url", d.PublicURL, "externally visible base URL")
	fs.String("jwt-secret", "", "secret used to sign session tokens")
	fs.Duration("token-ttl", d.TokenTTL, "session token lifetime")
	fs.StringSlice("cors-origin", d.CORSOrigins, "allowed browser origin (repeatable)")
	fs.String("nats-url", "", "NATS server for notification events (empty disables)")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	fs.String("log-format", d.LogFormat, "log format: text or json")
	fs.String("backup-dir", d.BackupDir, "directory for database backups")
}

func (c *Config) applyFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "addr":
			c.Addr = f.Value.String()
		case "data-dir":
			c.DataDir = f.Value.String()
		case "upload-dir":
			c.UploadDir = f.Value.String()
		case "public-url":
			c.PublicURL = f.Value.String()
		case "jwt-secret":
			c.JWTSecret = f.Value.String()
		case "token-ttl":
			c.TokenTTL, err = fs.GetDuration(f.Name)
		case "cors-origin":
			c.CORSOrigins, err = fs.GetStringSlice(f.Name)
		case "nats-url":
			c.NatsURL = f.Value.String()
		case "log-level":
			c.LogLevel = f.Value.String()
		case "log-format":
			c.LogFormat = f.Value.String()
		case "backup-dir":
			c.BackupDir = f.Value.String()
		}
	})
	return err
}
