//go:build !unix

package flock

import (
	"context"
	"time"
)

// Acquire is a no-op on platforms without flock(2).
func Acquire(ctx context.Context, path string, timeout time.Duration) (release func() error, err error) {
	return func() error { return nil }, nil
}
