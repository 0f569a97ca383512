package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	galleryhttp "github.com/sagarc03/gallery/http"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for the gallery.
type Config struct {
	Env     string                 `mapstructure:"env" yaml:"env" validate:"required,oneof=dev development prod production"`
	Server  ServerConfig           `mapstructure:"server" yaml:"server"`
	Storage StorageConfig          `mapstructure:"storage" yaml:"storage"`
	CORS    galleryhttp.CORSConfig `mapstructure:"cors" yaml:"cors"`
	Log     LogConfig              `mapstructure:"log" yaml:"log"`
	Client  ClientConfig           `mapstructure:"client" yaml:"client"`
}

// IsProduction reports whether Env names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// ServerConfig holds HTTP server configuration. Timeouts are in seconds;
// zero disables the timeout.
type ServerConfig struct {
	Port            int    `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	DefaultDocument string `mapstructure:"default_document" yaml:"default_document" validate:"required"`
	ConfineStatic   bool   `mapstructure:"confine_static" yaml:"confine_static"`
	ReadTimeout     int    `mapstructure:"read_timeout" yaml:"read_timeout" validate:"min=0"`
	WriteTimeout    int    `mapstructure:"write_timeout" yaml:"write_timeout" validate:"min=0"`
	IdleTimeout     int    `mapstructure:"idle_timeout" yaml:"idle_timeout" validate:"min=0"`
}

// Timeouts returns the read, write and idle timeouts as durations.
func (s ServerConfig) Timeouts() (read, write, idle time.Duration) {
	return time.Duration(s.ReadTimeout) * time.Second,
		time.Duration(s.WriteTimeout) * time.Second,
		time.Duration(s.IdleTimeout) * time.Second
}

// StorageConfig holds the gallery root.
type StorageConfig struct {
	Path string `mapstructure:"path" yaml:"path" validate:"required"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// ClientConfig points the ls and fetch commands at a running server instead
// of the local gallery root.
type ClientConfig struct {
	Server  string `mapstructure:"server" yaml:"server" validate:"omitempty,url"`
	Timeout int    `mapstructure:"timeout" yaml:"timeout" validate:"min=0"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"root":           "storage.path",
	"port":           "server.port",
	"log-level":      "log.level",
	"confine-static": "server.confine_static",
	"env":            "env",
	"server":         "client.server",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey, ok := flagToViperKey[f.Name]
		if !ok {
			return
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.default_document", galleryhttp.DefaultDocument)
	v.SetDefault("server.confine_static", false)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)

	v.SetDefault("storage.path", ".")

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "HEAD", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{})
	v.SetDefault("cors.exposed_headers", []string{})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 0)

	v.SetDefault("log.level", "info")

	v.SetDefault("client.server", "")
	v.SetDefault("client.timeout", 30)
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("gallery")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("GALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
