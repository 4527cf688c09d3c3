// Package cmake wraps the cmake configure/build/install workflow.
package cmake

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/mlbuild/xgbinst/pkgs/buildsys"
)

type defineValue struct {
	value    string
	typeName string
}

// CMake drives CMake-based builds with chainable configuration.
type CMake struct {
	sourceDir  string
	buildDir   string
	installDir string
	generator  string
	buildType  string
	jobs       int
	defines    map[string]defineValue
	env        map[string]string
	stdout     io.Writer
	stderr     io.Writer
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New returns a ready-to-use CMake for the given source and build directories.
func New(sourceDir, buildDir string) *CMake {
	return &CMake{
		sourceDir: sourceDir,
		buildDir:  buildDir,
		defines:   make(map[string]defineValue),
		env:       make(map[string]string),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// Source overrides the source directory.
func (c *CMake) Source(dir string) { c.sourceDir = dir }

// InstallDir sets CMAKE_INSTALL_PREFIX.
func (c *CMake) InstallDir(dir string) { c.installDir = dir }

// Generator sets the CMake generator (e.g. "Ninja", "Visual Studio 17 2022").
func (c *CMake) Generator(name string) *CMake {
	c.generator = name
	return c
}

// BuildType sets CMAKE_BUILD_TYPE (e.g. "Release", "Debug").
func (c *CMake) BuildType(name string) *CMake {
	c.buildType = name
	return c
}

// Jobs sets the parallel build job count passed to the build driver.
func (c *CMake) Jobs(n int) *CMake {
	c.jobs = n
	return c
}

// Define adds a -D<key>:STRING=<value> definition.
func (c *CMake) Define(key, value string) *CMake {
	c.defines[key] = defineValue{value: value, typeName: "STRING"}
	return c
}

// DefineBool adds a -D<key>:BOOL=ON/OFF definition.
func (c *CMake) DefineBool(key string, value bool) *CMake {
	v := "OFF"
	if value {
		v = "ON"
	}
	c.defines[key] = defineValue{value: v, typeName: "BOOL"}
	return c
}

// Env sets an environment variable for the spawned cmake processes.
func (c *CMake) Env(key, value string) {
	c.env[key] = value
}

// SetStdout redirects standard output of the spawned tools.
func (c *CMake) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr redirects standard error of the spawned tools.
func (c *CMake) SetStderr(w io.Writer) { c.stderr = w }

// ConfigureArgs returns the argument vector of the configure step.
func (c *CMake) ConfigureArgs(extra ...string) []string {
	args := []string{"-S", c.sourceDir, "-B", c.buildDir}
	if c.generator != "" {
		args = append(args, "-G", c.generator)
	}
	args = append(args, c.definesArgs()...)
	return append(args, extra...)
}

// BuildArgs returns the argument vector of the build step.
func (c *CMake) BuildArgs(extra ...string) []string {
	args := []string{"--build", c.buildDir}
	if c.buildType != "" {
		args = append(args, "--config", c.buildType)
	}
	if c.jobs > 0 {
		args = append(args, "--parallel", strconv.Itoa(c.jobs))
	}
	return append(args, extra...)
}

// InstallArgs returns the argument vector of the install step.
func (c *CMake) InstallArgs(extra ...string) []string {
	args := []string{"--install", c.buildDir}
	if c.buildType != "" {
		args = append(args, "--config", c.buildType)
	}
	if c.installDir != "" {
		args = append(args, "--prefix", c.installDir)
	}
	return append(args, extra...)
}

func (c *CMake) Configure(ctx context.Context, args ...string) error {
	if err := os.MkdirAll(c.buildDir, 0755); err != nil {
		return err
	}
	return c.run(ctx, c.ConfigureArgs(args...))
}

func (c *CMake) Build(ctx context.Context, args ...string) error {
	return c.run(ctx, c.BuildArgs(args...))
}

func (c *CMake) Install(ctx context.Context, args ...string) error {
	return c.run(ctx, c.InstallArgs(args...))
}

// OutputDir returns the install dir if set, otherwise the build dir.
func (c *CMake) OutputDir() string {
	if c.installDir != "" {
		return c.installDir
	}
	return c.buildDir
}

func (c *CMake) definesArgs() []string {
	defines := make(map[string]defineValue, len(c.defines)+2)
	for k, v := range c.defines {
		defines[k] = v
	}
	if c.installDir != "" {
		defines["CMAKE_INSTALL_PREFIX"] = defineValue{value: c.installDir, typeName: "PATH"}
	}
	if c.buildType != "" {
		defines["CMAKE_BUILD_TYPE"] = defineValue{value: c.buildType, typeName: "STRING"}
	}

	keys := make([]string, 0, len(defines))
	for k := range defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		def := defines[k]
		args = append(args, "-D"+k+":"+def.typeName+"="+def.value)
	}
	return args
}

func (c *CMake) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, "cmake", args...)
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr
	if len(c.env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), c.env)
	}
	return cmd.Run()
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}
