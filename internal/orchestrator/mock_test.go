package orchestrator

import (
	"context"
	"io"

	"github.com/mlbuild/xgbinst/internal/pybind"
	"github.com/mlbuild/xgbinst/pkgs/buildsys"
)

// mockVCS implements vcs.VCS for unit testing.
type mockVCS struct {
	cloneFunc    func(ctx context.Context, remote, dir string) error
	checkoutFunc func(ctx context.Context, dir, ref string) error
	tagsFunc     func(ctx context.Context, remote string) ([]string, error)
	latestFunc   func(ctx context.Context, remote string) (string, error)

	clones    []string
	checkouts []string
}

func (m *mockVCS) CloneRecursive(ctx context.Context, remote, dir string) error {
	m.clones = append(m.clones, remote)
	if m.cloneFunc != nil {
		return m.cloneFunc(ctx, remote, dir)
	}
	return nil
}

func (m *mockVCS) Checkout(ctx context.Context, dir, ref string) error {
	m.checkouts = append(m.checkouts, ref)
	if m.checkoutFunc != nil {
		return m.checkoutFunc(ctx, dir, ref)
	}
	return nil
}

func (m *mockVCS) Tags(ctx context.Context, remote string) ([]string, error) {
	if m.tagsFunc != nil {
		return m.tagsFunc(ctx, remote)
	}
	return nil, nil
}

func (m *mockVCS) Latest(ctx context.Context, remote string) (string, error) {
	if m.latestFunc != nil {
		return m.latestFunc(ctx, remote)
	}
	return "", nil
}

// mockBuildSystem implements buildsys.BuildSystem, recording lifecycle calls.
type mockBuildSystem struct {
	configureFunc func(ctx context.Context) error
	buildFunc     func(ctx context.Context, args ...string) error
	installFunc   func(ctx context.Context, args ...string) error

	calls  []string
	stdout io.Writer
	stderr io.Writer
}

var _ buildsys.BuildSystem = (*mockBuildSystem)(nil)

func (m *mockBuildSystem) Source(dir string)     {}
func (m *mockBuildSystem) InstallDir(dir string) {}
func (m *mockBuildSystem) Env(key, val string)   {}
func (m *mockBuildSystem) SetStdout(w io.Writer) { m.stdout = w }
func (m *mockBuildSystem) SetStderr(w io.Writer) { m.stderr = w }
func (m *mockBuildSystem) OutputDir() string     { return "" }

func (m *mockBuildSystem) Configure(ctx context.Context, args ...string) error {
	m.calls = append(m.calls, "configure")
	if m.configureFunc != nil {
		return m.configureFunc(ctx)
	}
	return nil
}

func (m *mockBuildSystem) Build(ctx context.Context, args ...string) error {
	if len(args) > 0 {
		m.calls = append(m.calls, "build --target install")
	} else {
		m.calls = append(m.calls, "build")
	}
	if m.buildFunc != nil {
		return m.buildFunc(ctx, args...)
	}
	return nil
}

func (m *mockBuildSystem) Install(ctx context.Context, args ...string) error {
	m.calls = append(m.calls, "install")
	if m.installFunc != nil {
		return m.installFunc(ctx, args...)
	}
	return nil
}

// mockPip implements the pyInstaller interface.
type mockPip struct {
	installFunc func(ctx context.Context, dir string) error
	probeFunc   func(ctx context.Context, pkg string) (pybind.Package, error)

	installs []string
	probes   int
}

func (m *mockPip) Install(ctx context.Context, dir string) error {
	m.installs = append(m.installs, dir)
	if m.installFunc != nil {
		return m.installFunc(ctx, dir)
	}
	return nil
}

func (m *mockPip) Probe(ctx context.Context, pkg string) (pybind.Package, error) {
	m.probes++
	if m.probeFunc != nil {
		return m.probeFunc(ctx, pkg)
	}
	return pybind.Package{}, nil
}

func (m *mockPip) SetStdout(w io.Writer) {}
func (m *mockPip) SetStderr(w io.Writer) {}
