// Package pybind installs the XGBoost Python package and probes whether it
// is present in the active Python environment.
package pybind

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// PackageName is the Python package the orchestrator installs and probes.
const PackageName = "xgboost"

// PythonBin returns the conventional interpreter name for the given GOOS.
func PythonBin(goos string) string {
	if goos == "windows" {
		return "python"
	}
	return "python3"
}

// Package describes one installed Python package. The zero value means
// "not installed".
type Package struct {
	Name     string
	Version  string
	Location string
}

// Found reports whether the probe located the package.
func (p Package) Found() bool { return p.Name != "" }

// Installer runs pip against a chosen Python interpreter.
type Installer struct {
	python string
	stdout io.Writer
	stderr io.Writer
}

// Option configures an Installer.
type Option func(*Installer)

// WithPython sets a custom Python interpreter path.
func WithPython(path string) Option {
	return func(i *Installer) {
		i.python = path
	}
}

// New creates a new Installer. The default interpreter matches the running
// platform's convention.
func New(goos string, opts ...Option) *Installer {
	i := &Installer{
		python: PythonBin(goos),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// SetStdout redirects standard output of the spawned interpreter.
func (i *Installer) SetStdout(w io.Writer) { i.stdout = w }

// SetStderr redirects standard error of the spawned interpreter.
func (i *Installer) SetStderr(w io.Writer) { i.stderr = w }

// InstallArgs returns the interpreter argument vector that installs the
// package rooted at the working directory.
func InstallArgs() []string {
	return []string{"-m", "pip", "install", "--upgrade", "."}
}

// ShowArgs returns the interpreter argument vector that queries the
// installed state of pkg.
func ShowArgs(pkg string) []string {
	return []string{"-m", "pip", "show", pkg}
}

// Install pip-installs the Python package rooted at dir.
func (i *Installer) Install(ctx context.Context, dir string) error {
	cmd := exec.CommandContext(ctx, i.python, InstallArgs()...)
	cmd.Dir = dir
	cmd.Stdout = i.stdout
	cmd.Stderr = i.stderr
	return cmd.Run()
}

// Probe reports the installed state of pkg. A missing package is not an
// error; err is non-nil only when the interpreter itself cannot be run.
func (i *Installer) Probe(ctx context.Context, pkg string) (Package, error) {
	cmd := exec.CommandContext(ctx, i.python, ShowArgs(pkg)...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// pip exits nonzero when the package is absent.
			return Package{}, nil
		}
		return Package{}, err
	}
	return parseShow(stdout.String()), nil
}

// parseShow extracts package metadata from `pip show` output.
func parseShow(output string) Package {
	var p Package
	for _, line := range strings.Split(output, "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch key {
		case "Name":
			p.Name = val
		case "Version":
			p.Version = val
		case "Location":
			p.Location = val
		}
	}
	return p
}
