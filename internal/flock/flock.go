// Package flock provides an advisory file lock used to serialize
// orchestration runs across processes.
package flock

import "os"

// Lock acquires an exclusive advisory lock on path, creating the file if
// needed. It blocks until the lock is available. The returned function
// releases the lock and closes the file.
func Lock(path string) (release func(), err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		unlockFile(f)
		f.Close()
	}, nil
}
