package wix

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/LotCoM/watcher-setup/pkg/setup"
)

// CommandRunner runs the engine executable.
type CommandRunner interface {
	// Run executes name with args in dir, with env appended to the
	// inherited environment, and returns combined output.
	Run(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	return cmd.CombinedOutput()
}

// Options configures a Compiler.
type Options struct {
	// Executable is the engine binary; "wix" when empty.
	Executable string

	// Extensions are passed as -ext arguments.
	Extensions []string

	// Args are appended before the source file.
	Args []string

	// EmitOnly writes the source, env and manifest files without running the engine.
	EmitOnly bool

	Runner CommandRunner
	Logger setup.Logger
}

// Compiler implements setup.Compiler on top of the WiX toolset.
type Compiler struct {
	opts Options
}

// NewCompiler creates a Compiler.
// Panics if opts.Logger is nil.
func NewCompiler(opts Options) *Compiler {
	if opts.Logger == nil {
		panic("logger cannot be nil")
	}
	if opts.Executable == "" {
		opts.Executable = "wix"
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	return &Compiler{opts: opts}
}

// Compile renders d, writes its companion files into d.OutDir and runs the engine.
func (c *Compiler) Compile(ctx context.Context, d *setup.Descriptor) (setup.Artifact, error) {
	source, err := RenderSource(d)
	if err != nil {
		return setup.Artifact{}, err
	}

	if err := os.MkdirAll(d.OutDir, 0755); err != nil {
		return setup.Artifact{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	base := filepath.Join(d.OutDir, d.OutFileName)
	art := setup.Artifact{
		SourcePath:   base + ".wxs",
		EnvPath:      base + ".release.env",
		ManifestPath: base + ".manifest.yaml",
	}

	if err := os.WriteFile(art.SourcePath, source, 0644); err != nil {
		return setup.Artifact{}, fmt.Errorf("failed to write WiX source: %w", err)
	}
	c.opts.Logger.Verbose("Wrote WiX source: %s", art.SourcePath)

	if err := godotenv.Write(d.ReleaseEnv, art.EnvPath); err != nil {
		return setup.Artifact{}, fmt.Errorf("failed to write release env file: %w", err)
	}
	c.opts.Logger.Verbose("Wrote release env: %s", art.EnvPath)

	manifest, err := yaml.Marshal(d)
	if err != nil {
		return setup.Artifact{}, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(art.ManifestPath, manifest, 0644); err != nil {
		return setup.Artifact{}, fmt.Errorf("failed to write manifest: %w", err)
	}
	c.opts.Logger.Verbose("Wrote manifest: %s", art.ManifestPath)

	if c.opts.EmitOnly {
		c.opts.Logger.Info("Skipping engine run; source written to %s", art.SourcePath)
		return art, nil
	}

	installer := base + ".msi"
	args := c.buildArgs(installer, art.SourcePath)
	c.opts.Logger.Verbose("Running %s %v", c.opts.Executable, args)

	output, err := c.opts.Runner.Run(ctx, d.SourceDir, releaseEnv(d.ReleaseEnv), c.opts.Executable, args...)
	if err != nil {
		return art, fmt.Errorf("%w: %s: %v\n%s", setup.ErrCompilationFailed, c.opts.Executable, err, output)
	}
	if len(output) > 0 {
		c.opts.Logger.Verbose("%s", output)
	}

	art.InstallerPath = installer
	return art, nil
}

func (c *Compiler) buildArgs(installer, source string) []string {
	args := []string{"build", "-o", installer}
	for _, ext := range c.opts.Extensions {
		args = append(args, "-ext", ext)
	}
	args = append(args, c.opts.Args...)
	return append(args, source)
}

// releaseEnv renders env as sorted KEY=VALUE entries.
func releaseEnv(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Verify Compiler implements the interface at compile time
var _ setup.Compiler = (*Compiler)(nil)
