package buildsys

import (
	"context"
	"io"
)

// BuildSystem captures shared capabilities of native build helpers.
// It keeps the common lifecycle and environment setup; implementations add
// their own extras (generators, defines, job counts).
type BuildSystem interface {
	// Basic paths.
	Source(dir string)
	InstallDir(dir string)

	// Environment helper.
	Env(key, val string)

	// Output redirection for the spawned tools.
	SetStdout(w io.Writer)
	SetStderr(w io.Writer)

	// Lifecycle.
	Configure(ctx context.Context, args ...string) error
	Build(ctx context.Context, args ...string) error
	Install(ctx context.Context, args ...string) error

	// Where artifacts land.
	OutputDir() string
}
