package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over values from config files and use the TASKFLOW_ prefix
// with underscores for nesting (e.g. TASKFLOW_SERVER_PORT).
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080) // 7 days
	v.SetDefault("mail.port", 587)
	v.SetDefault("reminder.scan_interval_seconds", 60)
	v.SetDefault("reminder.lookahead_minutes", 5)
	v.SetDefault("reminder.send_timeout_seconds", 30)

	// Optional config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file is fine; environment variables may carry everything.
	}

	// Environment variables: TASKFLOW_SERVER_PORT -> server.port
	v.SetEnvPrefix("TASKFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Viper only surfaces env-only keys through explicit binding.
	for _, key := range []string{
		"server.port", "server.log_level",
		"database.url",
		"auth.jwt_secret", "auth.token_lifetime_minutes", "auth.refresh_token_lifetime_minutes",
		"mail.host", "mail.port", "mail.username", "mail.password", "mail.from",
		"reminder.scan_interval_seconds", "reminder.lookahead_minutes", "reminder.send_timeout_seconds",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Reminder.Lookahead() < cfg.Reminder.ScanInterval() {
		return nil, fmt.Errorf(
			"invalid configuration: reminder lookahead (%s) must be at least the scan interval (%s)",
			cfg.Reminder.Lookahead(), cfg.Reminder.ScanInterval())
	}

	return &cfg, nil
}
