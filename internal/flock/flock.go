//go:build unix

// Package flock provides advisory file locks so concurrent builds sharing a working directory do not
// interleave writes.
package flock

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/errors"
	"github.com/jpillora/backoff"
	"golang.org/x/sys/unix"
)

// Acquire an exclusive lock on path, creating the file if necessary. Releasing the lock removes the
// file.
//
// A zero timeout makes a single attempt. Otherwise acquisition is retried with jittered exponential
// backoff until the timeout expires or ctx is cancelled.
func Acquire(ctx context.Context, path string, timeout time.Duration) (release func() error, err error) {
	delay := &backoff.Backoff{Min: 10 * time.Millisecond, Max: time.Second, Factor: 2, Jitter: true}
	deadline := time.Now().Add(timeout)
	for {
		f, locked, err := tryLock(path)
		if err != nil {
			return nil, err
		}
		if f != nil {
			return func() error {
				defer f.Close() //nolint:errcheck
				// Unlink before unlocking so a waiter never locks a file that is about to disappear.
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					return errors.Errorf("failed to remove lock file %s: %w", path, err)
				}
				if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil { //nolint:gosec
					return errors.Errorf("failed to unlock %s: %w", path, err)
				}
				return nil
			}, nil
		}
		if locked && (timeout <= 0 || time.Now().After(deadline)) {
			return nil, errors.Errorf("%s is locked by another process", path)
		}
		if !locked {
			// The holder removed the file between our open and lock, try again on the new file.
			continue
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "interrupted waiting for lock")
		case <-time.After(delay.Duration()):
		}
	}
}

// tryLock makes one non-blocking attempt to lock path. It returns the locked file on success, or
// locked=true if another process holds the lock. A nil file with locked=false means the file was
// replaced while locking.
func tryLock(path string) (f *os.File, locked bool, err error) {
	f, err = os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600) //nolint:gosec
	if err != nil {
		return nil, false, errors.Errorf("failed to open lock file %s: %w", path, err)
	}
	fd := int(f.Fd()) //nolint:gosec
	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, true, nil
		}
		return nil, false, errors.Errorf("failed to lock %s: %w", path, err)
	}
	var held, current unix.Stat_t
	if err := unix.Fstat(fd, &held); err != nil {
		_ = f.Close()
		return nil, false, errors.Errorf("failed to stat lock file %s: %w", path, err)
	}
	if err := unix.Stat(path, &current); err != nil || held.Dev != current.Dev || held.Ino != current.Ino {
		_ = f.Close()
		return nil, false, nil
	}
	return f, true, nil
}
