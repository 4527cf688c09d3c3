package orchestrator

import (
	"path/filepath"

	"github.com/mlbuild/xgbinst/internal/pybind"
	"github.com/mlbuild/xgbinst/pkgs/buildsys/cmake"
)

// Stage identifies one phase of an orchestration run.
type Stage string

const (
	StageAcquire   Stage = "acquire"
	StageConfigure Stage = "configure"
	StageBuild     Stage = "build"
	StageInstall   Stage = "install"
	StageProbe     Stage = "probe"
)

// Step is one external command of the generated sequence. Dir is relative
// to the per-run working directory; empty means the working directory itself.
type Step struct {
	Stage Stage
	Bin   string
	Args  []string
	Dir   string
}

// Directory layout inside a run dir. The checkout keeps the upstream
// project name so relative paths in its build files stay meaningful.
const (
	repoDirName  = "xgboost"
	buildDirName = "build"
	pyPkgDirName = "python-package"
)

// CMake defines for the optional build features.
const (
	defCUDA        = "USE_CUDA"
	defAVX         = "USE_AVX"
	defNCCL        = "USE_NCCL"
	defNCCLRoot    = "NCCL_ROOT"
	defToolkitRoot = "CUDA_TOOLKIT_ROOT_DIR"
	defCC          = "CMAKE_C_COMPILER"
	defCXX         = "CMAKE_CXX_COMPILER"
	defPyPackage   = "BUILD_PYTHON_PACKAGE"
)

// newCMake composes the CMake driver for req. Toolkit and NCCL settings
// apply only when CUDA is on, and never on Windows.
func newCMake(req BuildRequest, goos, srcDir, buildDir string) *cmake.CMake {
	c := cmake.New(srcDir, buildDir)
	c.BuildType("Release")
	if req.Compiler != MakeCompiler {
		c.Generator(req.Compiler)
	}
	if goos != "windows" {
		c.Jobs(req.Jobs)
	}
	c.DefineBool(defPyPackage, true)
	if req.CUDA {
		c.DefineBool(defCUDA, true)
	}
	if req.AVX {
		c.DefineBool(defAVX, true)
	}
	if goos != "windows" && req.CUDA {
		if !req.Toolkit.IsZero() {
			c.Define(defToolkitRoot, req.Toolkit.Root)
			c.Define(defCC, req.Toolkit.CC)
			c.Define(defCXX, req.Toolkit.CXX)
		}
		if req.NCCLRoot != "" {
			c.DefineBool(defNCCL, true)
			c.Define(defNCCLRoot, req.NCCLRoot)
		}
	}
	return c
}

// Plan returns the ordered command sequence that Run executes for req on
// the given GOOS. It is a pure function, usable for dry runs and tests.
func Plan(req BuildRequest, goos string) []Step {
	req.setDefaults()

	steps := []Step{{
		Stage: StageAcquire,
		Bin:   "git",
		Args:  []string{"clone", "--recursive", req.RepoURL, repoDirName},
	}}
	if req.SourceRef != "" {
		steps = append(steps, Step{
			Stage: StageAcquire,
			Bin:   "git",
			Args:  []string{"checkout", req.SourceRef},
			Dir:   repoDirName,
		})
	}

	python := pybind.PythonBin(goos)
	pyDir := filepath.Join(repoDirName, pyPkgDirName)
	probe := Step{Stage: StageProbe, Bin: python, Args: pybind.ShowArgs(pybind.PackageName)}

	// Windows-only shortcut: `make` skips the native build entirely and
	// installs the prebuilt Python package directory.
	if goos == "windows" && req.Compiler == MakeCompiler {
		return append(steps,
			Step{
				Stage: StageInstall,
				Bin:   python,
				Args:  pybind.InstallArgs(),
				Dir:   pyDir,
			},
			probe,
		)
	}

	c := newCMake(req, goos, repoDirName, filepath.Join(repoDirName, buildDirName))
	steps = append(steps,
		Step{Stage: StageConfigure, Bin: "cmake", Args: c.ConfigureArgs()},
		Step{Stage: StageBuild, Bin: "cmake", Args: c.BuildArgs()},
		Step{Stage: StageInstall, Bin: "cmake", Args: c.BuildArgs("--target", "install")},
		Step{Stage: StageInstall, Bin: python, Args: pybind.InstallArgs(), Dir: pyDir},
		probe,
	)
	return steps
}
