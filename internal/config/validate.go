package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"
)

// Validation constants define acceptable bounds for configuration values
const (
	// Token validation
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	// SaveInterval validation
	minSaveInterval = 10 * time.Second
	maxSaveInterval = 24 * time.Hour

	// HandlerTimeout validation
	minHandlerTimeout = 1 * time.Second
	maxHandlerTimeout = 5 * time.Minute

	// PresenceMaxRetries validation
	maxPresenceRetries = 20
)

// Validate checks if the configuration values are valid and within acceptable ranges.
// It returns all validation errors at once using errors.Join.
//
// Validated fields:
//   - Token: at least 50 characters
//   - DefaultPrefix: exactly one character
//   - OwnerIDs: numeric Discord snowflakes
//   - SaveInterval: between 10s and 24h
//   - HandlerTimeout: between 1s and 5m
//   - PresenceMaxRetries: between 0 and 20
//   - DataDir: not empty
//   - Log: known level and format
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validatePrefix(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateOwners(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateIntervals(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validatePresence(); err != nil {
		errs = append(errs, err)
	}

	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("DATA_DIR cannot be empty"))
	}

	if err := c.validateLog(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

// validateToken ensures the Discord token is present and has valid length
func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

func (c *Config) validatePrefix() error {
	if utf8.RuneCountInString(c.DefaultPrefix) != 1 {
		return fmt.Errorf("DEFAULT_PREFIX must be exactly one character, got %q", c.DefaultPrefix)
	}
	return nil
}

func (c *Config) validateOwners() error {
	var errs []error
	for _, id := range c.OwnerIDs {
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			errs = append(errs, fmt.Errorf("OWNER_IDS contains an invalid user id %q", id))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) validateIntervals() error {
	var errs []error

	if c.SaveInterval < minSaveInterval || c.SaveInterval > maxSaveInterval {
		errs = append(errs, fmt.Errorf(
			"SAVE_INTERVAL must be between %v and %v, got %v",
			minSaveInterval, maxSaveInterval, c.SaveInterval,
		))
	}

	if c.HandlerTimeout < minHandlerTimeout || c.HandlerTimeout > maxHandlerTimeout {
		errs = append(errs, fmt.Errorf(
			"HANDLER_TIMEOUT must be between %v and %v, got %v",
			minHandlerTimeout, maxHandlerTimeout, c.HandlerTimeout,
		))
	}

	return errors.Join(errs...)
}

func (c *Config) validatePresence() error {
	if c.PresenceMaxRetries < 0 || c.PresenceMaxRetries > maxPresenceRetries {
		return fmt.Errorf(
			"PRESENCE_MAX_RETRIES must be between 0 and %d, got %d",
			maxPresenceRetries, c.PresenceMaxRetries,
		)
	}
	return nil
}

func (c *Config) validateLog() error {
	var errs []error

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Log.Level))
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
