package env

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WorkDir returns the root directory for xgbinst working files.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, ".xgbinst"), nil
}

// RunDir creates a fresh working directory for a single orchestration run.
// Every run gets its own directory so repeated or concurrent invocations
// never collide on a shared checkout.
func RunDir() (string, error) {
	root, err := WorkDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, "run-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// LockPath returns the path of the file used to serialize runs.
func LockPath() (string, error) {
	root, err := WorkDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(root, 0700); err != nil {
		return "", err
	}
	return filepath.Join(root, ".lock"), nil
}
