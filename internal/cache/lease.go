package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const leasePoll = 5 * time.Millisecond

var errLeaseHeld = errors.New("lease held by another process")

// lease is an exclusive lock on a small state file, held only for the
// duration of one read or write of that file.
type lease struct {
	f      *os.File
	unlock func() error
}

// openLease opens path and locks it, polling until the lock is free or ctx
// is done.
func openLease(ctx context.Context, path string) (*lease, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lease directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}

	for {
		unlock, err := tryLock(f, path)
		if err == nil {
			return &lease{f: f, unlock: unlock}, nil
		}
		if !errors.Is(err, errLeaseHeld) {
			f.Close()
			return nil, err
		}
		timer := time.NewTimer(leasePoll)
		select {
		case <-ctx.Done():
			timer.Stop()
			f.Close()
			return nil, fmt.Errorf("waiting for %s: %w", filepath.Base(path), ctx.Err())
		case <-timer.C:
		}
	}
}

func (l *lease) read() (string, error) {
	if _, err := l.f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	data, err := io.ReadAll(l.f)
	return string(data), err
}

func (l *lease) write(s string) error {
	if err := l.f.Truncate(0); err != nil {
		return err
	}
	_, err := l.f.WriteAt([]byte(s), 0)
	return err
}

func (l *lease) release() error {
	return errors.Join(l.unlock(), l.f.Close())
}
