package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	outputLockName  = ".subforge.lock"
	outputLockRetry = 100 * time.Millisecond
	outputLockWait  = 10 * time.Second
)

// lockOutputDir takes an exclusive advisory lock on dir so concurrent
// subforge processes never interleave writes into the same directory.
func lockOutputDir(ctx context.Context, dir string) (func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	lockPath := filepath.Join(dir, outputLockName)
	lock := flock.New(lockPath)

	waitCtx, cancel := context.WithTimeout(ctx, outputLockWait)
	defer cancel()
	ok, err := lock.TryLockContext(waitCtx, outputLockRetry)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("output directory %s is locked by another subforge process", dir)
		}
		return nil, fmt.Errorf("lock output directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("output directory %s is locked by another subforge process", dir)
	}
	return func() { _ = lock.Unlock() }, nil
}
