package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	settingsFile = "appsettings.json"
	envPrefix    = "KM"
)

// environmentVars are consulted in order to pick the settings overlay.
var environmentVars = []string{"KM_ENVIRONMENT", "APP_ENV"}

// flagBindings maps config keys to the command-line flags that may override them.
var flagBindings = map[string]string{
	"base_url":                   "base-url",
	"api_key":                    "api-key",
	"log_level":                  "log-level",
	"timeout_seconds":            "timeout",
	"raise_on_unexpected_status": "raise-on-unexpected-status",
}

// Config holds the client configuration loaded from settings files, environment variables and flags.
type Config struct {
	AppName                 string            `mapstructure:"app_name"`
	Env                     string            `mapstructure:"app_env"`
	LogLevel                string            `mapstructure:"log_level"`
	BaseURL                 string            `mapstructure:"base_url"`
	APIKey                  string            `mapstructure:"api_key"`
	AuthHeaderName          string            `mapstructure:"auth_header_name"`
	AuthPrefix              string            `mapstructure:"auth_prefix"`
	TimeoutSeconds          int64             `mapstructure:"timeout_seconds"`
	Timeout                 time.Duration     `mapstructure:"-"`
	VerifySSL               bool              `mapstructure:"verify_ssl"`
	FollowRedirects         bool              `mapstructure:"follow_redirects"`
	RaiseOnUnexpectedStatus bool              `mapstructure:"raise_on_unexpected_status"`
	Headers                 map[string]string `mapstructure:"headers"`
}

// LoadOptions selects the configuration sources.
type LoadOptions struct {
	// SettingsDir holds appsettings*.json and .env. Defaults to the working directory.
	SettingsDir      string
	UseSettingsFiles bool
	UseEnvVars       bool
	// Flags, when set, override every other source for the keys in flagBindings.
	Flags *pflag.FlagSet
}

// DefaultLoadOptions enables settings files and environment variables in the working directory.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{UseSettingsFiles: true, UseEnvVars: true}
}

// Load reads configuration from defaults, settings files, environment variables and flags,
// each source overriding the previous one.
func Load(opts LoadOptions) (*Config, error) {
	dir := strings.TrimSpace(opts.SettingsDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve settings directory: %w", err)
		}
		dir = wd
	}

	if opts.UseEnvVars {
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}
	env := detectEnvironment()

	v := viper.New()
	v.SetDefault("app_name", "kernel-memory-client")
	v.SetDefault("app_env", env)
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "")
	v.SetDefault("api_key", "")
	v.SetDefault("auth_header_name", "Authorization")
	v.SetDefault("auth_prefix", "Bearer")
	v.SetDefault("timeout_seconds", 5)
	v.SetDefault("verify_ssl", true)
	v.SetDefault("follow_redirects", false)
	v.SetDefault("raise_on_unexpected_status", false)
	v.SetDefault("headers", map[string]string{})

	if opts.UseSettingsFiles {
		if err := readSettingsFiles(v, dir, env); err != nil {
			return nil, err
		}
	}

	if opts.UseEnvVars {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	if opts.Flags != nil {
		for key, name := range flagBindings {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	return &cfg, nil
}

// Validate checks the fields a client cannot be built without.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "warning", "error")),
	)
}

func detectEnvironment() string {
	for _, name := range environmentVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return strings.ToLower(v)
		}
	}
	return ""
}

// readSettingsFiles loads appsettings.json and, for development or production, its overlay.
func readSettingsFiles(v *viper.Viper, dir, env string) error {
	main := filepath.Join(dir, settingsFile)
	if !fileExists(main) {
		return fmt.Errorf("%s not found in directory %s", settingsFile, dir)
	}
	v.SetConfigFile(main)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", main, err)
	}

	if env != EnvDevelopment && env != EnvProduction {
		return nil
	}
	title := strings.ToUpper(env[:1]) + env[1:]
	for _, name := range []string{"appsettings." + env + ".json", "appsettings." + title + ".json"} {
		overlay := filepath.Join(dir, name)
		if !fileExists(overlay) {
			continue
		}
		v.SetConfigFile(overlay)
		if err := v.MergeInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", overlay, err)
		}
		return nil
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
