package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/twenty20twenty/twenty20twenty/internal/config"
	"github.com/twenty20twenty/twenty20twenty/internal/instance"
	"github.com/twenty20twenty/twenty20twenty/internal/version"
)

func TestNewRootCmd_Version(t *testing.T) {
	cmd := NewRootCmd()
	if cmd.Version != version.String() {
		t.Errorf("Expected version %q, got %q", version.String(), cmd.Version)
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(out.String(), version.Version) {
		t.Errorf("Expected output to contain %q, got %q", version.Version, out.String())
	}
}

func TestNewRootCmd_RejectsArgs(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for positional argument")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	err := run(context.Background(), &config.Config{})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestRun_AlreadyRunning(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cli-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	lockPath := filepath.Join(tempDir, "Twenty2020.tmp")
	held, err := instance.TryAcquire(lockPath)
	if err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}
	defer held.Release()

	cfg := &config.Config{
		ReminderInterval: time.Minute,
		LockPath:         lockPath,
		LogDir:           filepath.Join(tempDir, "logs"),
		FileLogging:      true,
	}
	err = run(context.Background(), cfg)
	if !errors.Is(err, instance.ErrAlreadyRunning) {
		t.Errorf("Expected ErrAlreadyRunning, got %v", err)
	}
	if !held.Held() {
		t.Error("Refused instance must not disturb the running one")
	}
}

func TestRun_LogDirectoryFailureIsNotFatal(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cli-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// A regular file where the log directory should be.
	blocker := filepath.Join(tempDir, "logs")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	lockPath := filepath.Join(tempDir, "Twenty2020.tmp")
	held, err := instance.TryAcquire(lockPath)
	if err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}
	defer held.Release()

	cfg := &config.Config{
		ReminderInterval: time.Minute,
		LockPath:         lockPath,
		LogDir:           filepath.Join(blocker, "nested"),
		FileLogging:      true,
	}

	// The run gets as far as the instance guard instead of failing on logs.
	err = run(context.Background(), cfg)
	if !errors.Is(err, instance.ErrAlreadyRunning) {
		t.Errorf("Expected ErrAlreadyRunning, got %v", err)
	}
}

func TestRun_LockUnavailable(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cli-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := &config.Config{
		ReminderInterval: time.Minute,
		LockPath:         filepath.Join(tempDir, "missing", "Twenty2020.tmp"),
	}
	err = run(context.Background(), cfg)
	if !errors.Is(err, instance.ErrLockUnavailable) {
		t.Errorf("Expected ErrLockUnavailable, got %v", err)
	}
	if errors.Is(err, instance.ErrAlreadyRunning) {
		t.Error("I/O failure must not be reported as a running instance")
	}
}
