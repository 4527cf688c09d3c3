// Package orchestrator turns a BuildRequest into the clone/configure/build/
// install sequence for the XGBoost native library and its Python package,
// executes it, and reports the outcome per stage.
package orchestrator

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/qiniu/x/log"
	"golang.org/x/mod/semver"

	"github.com/mlbuild/xgbinst/internal/env"
	"github.com/mlbuild/xgbinst/internal/flock"
	"github.com/mlbuild/xgbinst/internal/pybind"
	"github.com/mlbuild/xgbinst/internal/vcs"
	"github.com/mlbuild/xgbinst/pkgs/buildsys"
)

// pyInstaller is the slice of pybind.Installer the orchestrator needs.
type pyInstaller interface {
	Install(ctx context.Context, dir string) error
	Probe(ctx context.Context, pkg string) (pybind.Package, error)
	SetStdout(w io.Writer)
	SetStderr(w io.Writer)
}

// Options configures an Orchestrator.
type Options struct {
	// VCS overrides the git client. Nil means the system git.
	VCS vcs.VCS

	// Python overrides the Python interpreter path.
	Python string

	// Stdout and Stderr receive the spawned tools' output.
	// Nil discards it; the diagnostic tail is captured either way.
	Stdout, Stderr io.Writer
}

// Orchestrator runs build requests one at a time. Concurrent runs, in this
// process or another, serialize on a file lock in the work directory.
type Orchestrator struct {
	vcs    vcs.VCS
	pip    pyInstaller
	goos   string
	stdout io.Writer
	stderr io.Writer

	// hooks for tests
	newBuild func(req BuildRequest, goos, srcDir, buildDir string) buildsys.BuildSystem
	runDir   func() (string, error)
	lockPath func() (string, error)
}

// New creates an Orchestrator for the current platform.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		vcs:    opts.VCS,
		goos:   runtime.GOOS,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		newBuild: func(req BuildRequest, goos, srcDir, buildDir string) buildsys.BuildSystem {
			return newCMake(req, goos, srcDir, buildDir)
		},
		runDir:   env.RunDir,
		lockPath: env.LockPath,
	}
	if o.vcs == nil {
		o.vcs = vcs.NewGitVCS()
	}
	if o.stdout == nil {
		o.stdout = io.Discard
	}
	if o.stderr == nil {
		o.stderr = io.Discard
	}
	var pyOpts []pybind.Option
	if opts.Python != "" {
		pyOpts = append(pyOpts, pybind.WithPython(opts.Python))
	}
	o.pip = pybind.New(o.goos, pyOpts...)
	return o
}

// Run executes the full sequence for req. The returned error, if any, is a
// *StageError matching one of the stage sentinels via errors.Is. The work
// directory is removed on every exit path.
func (o *Orchestrator) Run(ctx context.Context, req BuildRequest) (*Report, error) {
	req.setDefaults()

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	if req.OverridesIgnored(o.goos) {
		log.Warn("CUDA toolkit and NCCL overrides are not supported on Windows; ignoring")
	}

	lockPath, err := o.lockPath()
	if err != nil {
		return nil, err
	}
	release, err := flock.Lock(lockPath)
	if err != nil {
		return nil, err
	}
	defer release()

	runDir, err := o.runDir()
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(runDir)

	report := &Report{}
	// Snapshot first: a package left by an earlier run must not be
	// mistaken for a fresh result. Probe errors here are not fatal; the
	// post-run probe settles it.
	if before, err := o.pip.Probe(ctx, pybind.PackageName); err == nil {
		report.Before = before
	}

	ref := req.SourceRef
	if ref == "" && req.LatestRelease {
		start := time.Now()
		tags, err := o.vcs.Tags(ctx, req.RepoURL)
		if err != nil {
			report.record(StageAcquire, start, err)
			return report, stageErr(StageAcquire, err, "")
		}
		ref = latestRelease(tags)
	}
	report.Ref = ref

	srcDir := filepath.Join(runDir, repoDirName)
	start := time.Now()
	err = o.vcs.CloneRecursive(ctx, req.RepoURL, srcDir)
	if err == nil && ref != "" {
		err = o.vcs.Checkout(ctx, srcDir, ref)
	}
	report.record(StageAcquire, start, err)
	if err != nil {
		return report, stageErr(StageAcquire, err, "")
	}

	tail := &tailBuffer{}
	outW := io.MultiWriter(o.stdout, tail)
	errW := io.MultiWriter(o.stderr, tail)
	o.pip.SetStdout(outW)
	o.pip.SetStderr(errW)

	pyDir := filepath.Join(srcDir, pyPkgDirName)

	if o.goos == "windows" && req.Compiler == MakeCompiler {
		start = time.Now()
		err = o.pip.Install(ctx, pyDir)
		report.record(StageInstall, start, err)
		if err != nil {
			return report, stageErr(StageInstall, err, tail.String())
		}
	} else {
		bs := o.newBuild(req, o.goos, srcDir, filepath.Join(srcDir, buildDirName))
		bs.SetStdout(outW)
		bs.SetStderr(errW)

		start = time.Now()
		err = bs.Configure(ctx)
		report.record(StageConfigure, start, err)
		if err != nil {
			return report, stageErr(StageConfigure, err, tail.String())
		}

		start = time.Now()
		err = bs.Build(ctx)
		report.record(StageBuild, start, err)
		if err != nil {
			return report, stageErr(StageBuild, err, tail.String())
		}

		start = time.Now()
		err = bs.Build(ctx, "--target", "install")
		if err == nil {
			err = o.pip.Install(ctx, pyDir)
		}
		report.record(StageInstall, start, err)
		if err != nil {
			return report, stageErr(StageInstall, err, tail.String())
		}
	}

	start = time.Now()
	after, err := o.pip.Probe(ctx, pybind.PackageName)
	if err == nil && !after.Found() {
		err = errors.New("package not present after install")
	}
	report.record(StageProbe, start, err)
	report.After = after
	if err != nil {
		return report, stageErr(StageProbe, err, tail.String())
	}
	return report, nil
}

// latestRelease returns the newest semver tag, tolerating a missing "v"
// prefix. Empty when no tag parses as semver.
func latestRelease(tags []string) string {
	var best, bestKey string
	for _, tag := range tags {
		key := tag
		if !strings.HasPrefix(key, "v") {
			key = "v" + key
		}
		if !semver.IsValid(key) {
			continue
		}
		if best == "" || semver.Compare(key, bestKey) > 0 {
			best, bestKey = tag, key
		}
	}
	return best
}
