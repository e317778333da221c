package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/twenty20twenty/twenty20twenty/internal/constants"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the runtime settings. There is no config file, flag or
// environment override: every launch starts from Default().
type Config struct {
	// ReminderInterval is the period between reminders.
	// Default: 20 minutes
	ReminderInterval time.Duration

	// LockPath is the single-instance lock file.
	// Default: LockFilePath()
	LockPath string

	// LogDir is where the rotating log file is written.
	// Default: LogDirectory()
	LogDir string

	// FileLogging enables the rotating log file in LogDir.
	// Default: true
	FileLogging bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ReminderInterval: constants.DefaultReminderInterval,
		LockPath:         LockFilePath(),
		LogDir:           LogDirectory(),
		FileLogging:      true,
	}
}

// Validate checks the configuration for values the core cannot run with.
func (c *Config) Validate() error {
	if c.ReminderInterval < constants.MinReminderInterval {
		return fmt.Errorf("%w: reminder interval %s is below %s",
			ErrInvalidConfig, c.ReminderInterval, constants.MinReminderInterval)
	}
	if c.LockPath == "" {
		return fmt.Errorf("%w: lock path is empty", ErrInvalidConfig)
	}
	if c.FileLogging && c.LogDir == "" {
		return fmt.Errorf("%w: file logging enabled without a log directory", ErrInvalidConfig)
	}
	return nil
}
