//go:build !windows

package gringottsdb

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lockFile takes an advisory exclusive lock on f, guarding against a
// second handle being opened against the same file from this process or
// another. It is not a concurrency mechanism - concurrent access is out
// of scope - only a misuse guard against accidentally opening the same
// file twice.
func lockFile(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return fmt.Errorf("gringottsdb: lock %s: %w", f.Name(), err)
	}
	return nil
}

func unlockFile(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		return fmt.Errorf("gringottsdb: unlock %s: %w", f.Name(), err)
	}
	return nil
}
