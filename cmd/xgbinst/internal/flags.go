package internal

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mlbuild/xgbinst/internal/orchestrator"
)

// buildFlags collects the request options shared by install and plan.
type buildFlags struct {
	repo     string
	ref      string
	latest   bool
	compiler string
	cuda     bool
	avx      bool

	toolkitRoot string
	cc          string
	cxx         string
	ncclRoot    string

	jobs    int
	timeout time.Duration
}

func (f *buildFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.repo, "repo", orchestrator.DefaultRepoURL, "Repository URL to clone")
	flags.StringVarP(&f.ref, "ref", "r", "", "Branch, tag or commit to check out (default: default branch)")
	flags.BoolVar(&f.latest, "latest", false, "Check out the newest release tag when --ref is empty")
	flags.StringVarP(&f.compiler, "compiler", "c", orchestrator.MakeCompiler,
		`Toolchain: "make" or a CMake generator name (e.g. "Visual Studio 17 2022")`)
	flags.BoolVar(&f.cuda, "cuda", false, "Build with CUDA GPU acceleration")
	flags.BoolVar(&f.avx, "avx", false, "Build with AVX instruction support")
	flags.StringVar(&f.toolkitRoot, "cuda-root", "", "CUDA toolkit root directory (Unix only, needs --cuda)")
	flags.StringVar(&f.cc, "cc", "", "C compiler for the CUDA toolkit override (Unix only)")
	flags.StringVar(&f.cxx, "cxx", "", "C++ compiler for the CUDA toolkit override (Unix only)")
	flags.StringVar(&f.ncclRoot, "nccl-root", "", "NCCL install root enabling multi-GPU support (Unix only, needs --cuda)")
	flags.IntVarP(&f.jobs, "jobs", "j", 0, "Parallel build jobs (default: number of CPUs)")
	flags.DurationVar(&f.timeout, "timeout", 0, "Abort the whole run after this duration (0 = no limit)")
}

func (f *buildFlags) request() orchestrator.BuildRequest {
	return orchestrator.BuildRequest{
		RepoURL:       f.repo,
		SourceRef:     f.ref,
		LatestRelease: f.latest,
		Compiler:      f.compiler,
		CUDA:          f.cuda,
		AVX:           f.avx,
		Toolkit: orchestrator.ToolkitPaths{
			Root: f.toolkitRoot,
			CC:   f.cc,
			CXX:  f.cxx,
		},
		NCCLRoot: f.ncclRoot,
		Jobs:     f.jobs,
		Timeout:  f.timeout,
	}
}
