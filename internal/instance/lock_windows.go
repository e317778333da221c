//go:build windows

package instance

import (
	"errors"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// lockFile is an open lock file held with LockFileEx.
//
// Only the holder removes the file: release marks it delete-pending while
// the lock is still held, then closes the handle. A crashed holder leaves the
// file behind and the next launch reuses it.
type lockFile struct {
	f *os.File
}

// FILE_DISPOSITION_INFO
type fileDispositionInfo struct {
	DeleteFile bool
}

// FILE_STANDARD_INFO
type fileStandardInfo struct {
	AllocationSize int64
	EndOfFile      int64
	NumberOfLinks  uint32
	DeletePending  bool
	Directory      bool
}

func openLockFile(path string) (*lockFile, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}

	h, err := windows.CreateFile(
		name,
		windows.GENERIC_READ|windows.GENERIC_WRITE|windows.DELETE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_ALWAYS,
		windows.FILE_ATTRIBUTE_TEMPORARY,
		0,
	)
	if err != nil {
		return nil, err
	}
	return &lockFile{f: os.NewFile(uintptr(h), path)}, nil
}

// tryLock locks the first byte exclusively. LOCKFILE_FAIL_IMMEDIATELY makes
// contention fail with ERROR_LOCK_VIOLATION instead of waiting.
func (lf *lockFile) tryLock() error {
	ol := new(windows.Overlapped)
	return windows.LockFileEx(
		windows.Handle(lf.f.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0,
		1, 0,
		ol,
	)
}

// isCurrent reports false when the file was marked for deletion by a
// releasing holder after we opened it.
func (lf *lockFile) isCurrent() (bool, error) {
	var info fileStandardInfo
	err := windows.GetFileInformationByHandleEx(
		windows.Handle(lf.f.Fd()),
		windows.FileStandardInfo,
		(*byte)(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
	)
	if err != nil {
		return false, err
	}
	return !info.DeletePending, nil
}

func (lf *lockFile) release() error {
	h := windows.Handle(lf.f.Fd())
	disposition := fileDispositionInfo{DeleteFile: true}
	delErr := windows.SetFileInformationByHandle(
		h,
		windows.FileDispositionInfo,
		(*byte)(unsafe.Pointer(&disposition)),
		uint32(unsafe.Sizeof(disposition)),
	)

	ol := new(windows.Overlapped)
	_ = windows.UnlockFileEx(h, 0, 1, 0, ol)
	if err := lf.f.Close(); err != nil {
		return err
	}
	return delErr
}

func (lf *lockFile) close() {
	lf.f.Close()
}

func isContention(err error) bool {
	return errors.Is(err, windows.ERROR_LOCK_VIOLATION) ||
		errors.Is(err, windows.ERROR_SHARING_VIOLATION)
}

// isTransientOpen reports errors seen while a released lock file is still
// delete-pending. A real permission problem keeps failing and is reported
// once the attempts run out.
func isTransientOpen(err error) bool {
	return errors.Is(err, windows.ERROR_ACCESS_DENIED) ||
		errors.Is(err, windows.ERROR_DELETE_PENDING)
}
