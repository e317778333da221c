//go:build !windows

package instance

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// lockFile is an open lock file held with flock(2).
type lockFile struct {
	f *os.File
}

func openLockFile(path string) (*lockFile, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	return &lockFile{f: f}, nil
}

// tryLock places an exclusive flock. LOCK_NB makes contention fail with
// EWOULDBLOCK instead of waiting.
func (lf *lockFile) tryLock() error {
	for {
		err := unix.Flock(int(lf.f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == unix.EINTR {
			continue
		}
		return err
	}
}

// isCurrent reports whether path still names the inode we hold.
func (lf *lockFile) isCurrent() (bool, error) {
	held, err := lf.f.Stat()
	if err != nil {
		return false, err
	}
	onDisk, err := os.Stat(lf.f.Name())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return os.SameFile(held, onDisk), nil
}

// release unlinks the file while still holding the lock, so a concurrent
// opener either sees contention or fails isCurrent, then closes.
func (lf *lockFile) release() error {
	removeErr := os.Remove(lf.f.Name())
	if errors.Is(removeErr, os.ErrNotExist) {
		removeErr = nil
	}
	_ = unix.Flock(int(lf.f.Fd()), unix.LOCK_UN)
	closeErr := lf.f.Close()
	if closeErr != nil {
		return closeErr
	}
	return removeErr
}

func (lf *lockFile) close() {
	lf.f.Close()
}

func isContention(err error) bool {
	return errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN)
}

// isTransientOpen is always false: unlinking a path never blocks a new open.
func isTransientOpen(err error) bool {
	return false
}
