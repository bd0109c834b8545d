//go:build windows

package gringottsdb

import "os"

// lockFile is a no-op on platforms without flock(2); the single-handle
// guard is advisory everywhere it exists, so its absence here doesn't
// change the supported concurrency model.
func lockFile(f *os.File) error {
	return nil
}

func unlockFile(f *os.File) error {
	return nil
}
