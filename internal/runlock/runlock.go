// Package runlock keeps a manual run and a scheduled run from touching the
// store at the same time.
package runlock

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("another leadbrief run is in progress")

// Lock is a held advisory file lock.
type Lock struct {
	fl *flock.Flock
}

// Acquire takes an exclusive lock on path without blocking.
func Acquire(path string) (*Lock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("lock %s: %w", path, ErrLocked)
	}
	return &Lock{fl: fl}, nil
}

// Release unlocks. The lock file is left in place.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
