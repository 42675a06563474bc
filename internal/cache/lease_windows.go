//go:build windows

package cache

import (
	"errors"
	"os"
)

// tryLock uses an exclusively created sidecar file; flock is unavailable.
func tryLock(_ *os.File, path string) (func() error, error) {
	lockPath := path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if errors.Is(err, os.ErrExist) {
		return nil, errLeaseHeld
	}
	if err != nil {
		return nil, err
	}
	return func() error {
		f.Close()
		return os.Remove(lockPath)
	}, nil
}
