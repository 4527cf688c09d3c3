package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWorkDir(t *testing.T) {
	workDir, err := WorkDir()
	if err != nil {
		t.Fatalf("WorkDir() returned error: %v", err)
	}

	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		t.Fatalf("os.UserCacheDir() returned error: %v", err)
	}
	want := filepath.Join(userCacheDir, ".xgbinst")
	if workDir != want {
		t.Errorf("WorkDir() = %q, want %q", workDir, want)
	}
}

func TestRunDirUnique(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir1, err := RunDir()
	if err != nil {
		t.Fatalf("first RunDir() failed: %v", err)
	}
	dir2, err := RunDir()
	if err != nil {
		t.Fatalf("second RunDir() failed: %v", err)
	}

	if dir1 == dir2 {
		t.Fatalf("RunDir() returned the same directory twice: %q", dir1)
	}

	for _, dir := range []string{dir1, dir2} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("run dir was not created: %v", err)
		}
		if !info.IsDir() {
			t.Errorf("%q is not a directory", dir)
		}
		if base := filepath.Base(dir); !strings.HasPrefix(base, "run-") {
			t.Errorf("run dir %q missing run- prefix", base)
		}
	}
}

func TestLockPath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	lockPath, err := LockPath()
	if err != nil {
		t.Fatalf("LockPath() returned error: %v", err)
	}

	// The parent must exist so the lock file can be created later.
	if _, err := os.Stat(filepath.Dir(lockPath)); err != nil {
		t.Fatalf("lock parent dir not created: %v", err)
	}
	if filepath.Base(lockPath) != ".lock" {
		t.Errorf("LockPath() = %q, want a .lock file", lockPath)
	}
}
