package orchestrator

import (
	"runtime"
	"time"
)

// DefaultRepoURL is the upstream XGBoost repository.
const DefaultRepoURL = "https://github.com/dmlc/xgboost"

// MakeCompiler is the compiler identifier selecting the Python-package-only
// install path instead of a CMake generator build. The shortcut applies on
// Windows only; Unix always configures with CMake (the upstream behavior is
// asymmetric and kept that way on purpose).
const MakeCompiler = "make"

// ToolkitPaths overrides CUDA toolkit auto-detection.
type ToolkitPaths struct {
	Root string // CUDA toolkit root directory
	CC   string // C compiler path
	CXX  string // C++ compiler path
}

// IsZero reports whether no override was supplied.
func (t ToolkitPaths) IsZero() bool { return t == ToolkitPaths{} }

// BuildRequest describes one desired build/install of the library.
type BuildRequest struct {
	// RepoURL is the clone source. Empty means DefaultRepoURL.
	RepoURL string

	// SourceRef is the branch, tag or commit to check out after clone.
	// Empty means the default branch.
	SourceRef string

	// LatestRelease resolves SourceRef to the newest semver tag of the
	// remote when SourceRef is empty.
	LatestRelease bool

	// Compiler is MakeCompiler or a CMake generator name
	// (e.g. "Visual Studio 17 2022", "MinGW Makefiles"). Unrecognized
	// values are passed to cmake verbatim; rejection is cmake's call.
	Compiler string

	// CUDA requests a GPU-accelerated build.
	CUDA bool

	// AVX requests an AVX instruction-set build.
	AVX bool

	// Toolkit overrides CUDA toolkit detection.
	// Only honored when CUDA is set, and never on Windows.
	Toolkit ToolkitPaths

	// NCCLRoot enables multi-GPU NCCL support rooted at the given path.
	// Only honored when CUDA is set, and never on Windows.
	NCCLRoot string

	// Jobs is the parallel build job count. Zero means runtime.NumCPU.
	Jobs int

	// Timeout bounds the whole run, including clone and compile.
	// Zero means no limit.
	Timeout time.Duration
}

// OverridesIgnored reports whether the request carries toolkit or NCCL
// overrides that the given platform does not honor. Callers should warn
// the user rather than drop them silently.
func (r BuildRequest) OverridesIgnored(goos string) bool {
	return goos == "windows" && (!r.Toolkit.IsZero() || r.NCCLRoot != "")
}

func (r *BuildRequest) setDefaults() {
	if r.RepoURL == "" {
		r.RepoURL = DefaultRepoURL
	}
	if r.Compiler == "" {
		r.Compiler = MakeCompiler
	}
	if r.Jobs <= 0 {
		r.Jobs = runtime.NumCPU()
	}
}
