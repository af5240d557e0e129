package lock

import (
	"fmt"
	"os"
	"strconv"
)

// ErrHeld is returned by Acquire when another process holds the lock.
var ErrHeld = fmt.Errorf("lock already held")

// FileLock serializes reconciliation runs across processes through an
// exclusively-created lock file.
type FileLock struct {
	path string
}

// New creates a FileLock for the given path.
func New(path string) *FileLock {
	return &FileLock{path: path}
}

// Acquire creates the lock file exclusively. ErrHeld means another run is in
// progress and the caller should skip, not fail. The file records the owner
// pid for operator inspection.
func (l *FileLock) Acquire() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrHeld
		}
		return fmt.Errorf("creating lock file %s: %w", l.path, err)
	}
	_, werr := f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	cerr := f.Close()
	if werr != nil || cerr != nil {
		l.Release()
		if werr != nil {
			return fmt.Errorf("writing lock file %s: %w", l.path, werr)
		}
		return fmt.Errorf("closing lock file %s: %w", l.path, cerr)
	}
	return nil
}

// Release removes the lock file. Safe to call when the lock was never taken.
func (l *FileLock) Release() {
	_ = os.Remove(l.path)
}
