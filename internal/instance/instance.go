// Package instance guarantees that only one copy of the application runs on
// the machine at a time.
//
// The guard is an exclusive, non-blocking advisory lock on a well-known file
// in the platform temp directory. The OS drops the lock when the owning
// handle is closed, including when the process dies, so a crashed instance
// never blocks the next launch. The lock is advisory: deleting the file by
// hand defeats it.
package instance

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrAlreadyRunning means another process holds the lock.
	ErrAlreadyRunning = errors.New("another instance is already running")

	// ErrLockUnavailable means the lock file could not be opened or locked
	// for a reason other than contention (permissions, missing directory,
	// disk errors). Callers must not start in this case either.
	ErrLockUnavailable = errors.New("instance lock unavailable")
)

// maxAcquireAttempts bounds the retries when a releasing instance removes
// the lock file while we open or lock it.
const maxAcquireAttempts = 3

// retryDelay is the pause before the next attempt, multiplied by the attempt
// number.
const retryDelay = 10 * time.Millisecond

// Lock is an acquired single-instance lock. Keep it for the lifetime of the
// process and call Release on graceful shutdown.
type Lock struct {
	mu     sync.Mutex
	path   string
	handle *lockFile
}

// TryAcquire opens (creating if absent) the file at path and places a
// non-blocking exclusive lock on it.
//
// Contention returns ErrAlreadyRunning. Every other failure returns an error
// wrapping ErrLockUnavailable. In both cases the handle opened for the
// attempt is closed before returning.
func TryAcquire(path string) (*Lock, error) {
	var lastErr error
	for attempt := 0; attempt < maxAcquireAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * retryDelay)
		}

		f, err := openLockFile(path)
		if err != nil {
			// The previous holder's file can still be on its way out.
			if isTransientOpen(err) {
				lastErr = fmt.Errorf("open %s: %v", path, err)
				continue
			}
			return nil, fmt.Errorf("%w: open %s: %v", ErrLockUnavailable, path, err)
		}

		if err := f.tryLock(); err != nil {
			f.close()
			if isContention(err) {
				return nil, ErrAlreadyRunning
			}
			return nil, fmt.Errorf("%w: lock %s: %v", ErrLockUnavailable, path, err)
		}

		// A releasing instance may have removed the file after we opened it,
		// leaving us with a lock on a file that no longer has the path.
		same, err := f.isCurrent()
		if err != nil {
			f.close()
			return nil, fmt.Errorf("%w: verify %s: %v", ErrLockUnavailable, path, err)
		}
		if same {
			return &Lock{path: path, handle: f}, nil
		}
		f.close()
		lastErr = fmt.Errorf("lock file %s was replaced during acquisition", path)
	}
	return nil, fmt.Errorf("%w: %v", ErrLockUnavailable, lastErr)
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Held reports whether the lock has not been released yet.
func (l *Lock) Held() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handle != nil
}

// Release removes the lock file (best effort) and closes the handle, which
// drops the lock. Calling Release on a nil or already released Lock is a
// no-op. The returned error is informational: the lock is gone either way.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handle == nil {
		return nil
	}

	err := l.handle.release()
	l.handle = nil
	if err != nil {
		return fmt.Errorf("release %s: %w", l.path, err)
	}
	return nil
}
