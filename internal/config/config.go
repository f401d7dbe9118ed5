package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"`
	Reminder ReminderConfig `mapstructure:"reminder" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// MailConfig contains SMTP transport settings for reminder emails.
// An empty Host or Username leaves the mail sender unconfigured; reminder
// delivery then degrades to a logged no-op rather than an error.
type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// ReminderConfig contains the reminder scanner's scheduling settings.
// The lookahead window must be at least as long as the scan interval so a
// reminder can never fall between two consecutive scans.
type ReminderConfig struct {
	ScanIntervalSeconds int `mapstructure:"scan_interval_seconds" validate:"required,gt=0"`
	LookaheadMinutes    int `mapstructure:"lookahead_minutes"     validate:"required,gt=0"`
	SendTimeoutSeconds  int `mapstructure:"send_timeout_seconds"  validate:"required,gt=0"`
}

// ScanInterval returns the scan cadence as a duration.
func (c ReminderConfig) ScanInterval() time.Duration {
	return time.Duration(c.ScanIntervalSeconds) * time.Second
}

// Lookahead returns the reminder selection window as a duration.
func (c ReminderConfig) Lookahead() time.Duration {
	return time.Duration(c.LookaheadMinutes) * time.Minute
}

// SendTimeout returns the per-send timeout as a duration.
func (c ReminderConfig) SendTimeout() time.Duration {
	return time.Duration(c.SendTimeoutSeconds) * time.Second
}
