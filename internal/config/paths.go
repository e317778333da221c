// Package config provides the runtime configuration for the 20-20-20 tray app.
package config

import (
	"os"
	"path/filepath"

	"github.com/twenty20twenty/twenty20twenty/internal/constants"
)

// LockFilePath returns the well-known single-instance lock file path.
//
// Every user session on the machine resolves the same name under the platform
// temp directory, so concurrent launches contend on one file:
//   - Windows: %TEMP%\Twenty2020.tmp
//   - Unix: $TMPDIR/Twenty2020.tmp (usually /tmp/Twenty2020.tmp)
func LockFilePath() string {
	return filepath.Join(os.TempDir(), constants.LockFileName)
}

// LogDirectory returns the directory that holds the rotating log file.
//
// Locations:
//   - Windows: %LOCALAPPDATA%\twenty20twenty\logs
//   - macOS: ~/Library/Caches/twenty20twenty/logs
//   - Linux: $XDG_CACHE_HOME/twenty20twenty/logs (~/.cache by default)
func LogDirectory() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), constants.BinaryName+"-logs")
		}
		return filepath.Join(homeDir, ".cache", constants.BinaryName, "logs")
	}
	return filepath.Join(cacheDir, constants.BinaryName, "logs")
}

// EnsureLogDirectory creates dir if it doesn't exist.
// Uses 0700 permissions to restrict log access to owner only.
func EnsureLogDirectory(dir string) error {
	return os.MkdirAll(dir, 0700)
}
