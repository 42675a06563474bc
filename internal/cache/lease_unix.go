//go:build !windows

package cache

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

func tryLock(f *os.File, _ string) (func() error, error) {
	err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if errors.Is(err, syscall.EWOULDBLOCK) {
		return nil, errLeaseHeld
	}
	if err != nil {
		return nil, fmt.Errorf("flock: %w", err)
	}
	return func() error {
		if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
			return fmt.Errorf("failed to release lock: %w", err)
		}
		return nil
	}, nil
}
