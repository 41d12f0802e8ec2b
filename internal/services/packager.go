// Package services wires the packaging pipeline together.
package services

import (
	"context"
	"fmt"

	"github.com/LotCoM/watcher-setup/internal/descriptor"
	"github.com/LotCoM/watcher-setup/internal/identity"
	"github.com/LotCoM/watcher-setup/internal/version"
	"github.com/LotCoM/watcher-setup/pkg/setup"
)

// PackageConfig carries the explicit inputs of one packaging run.
type PackageConfig struct {
	// Product is the static product configuration.
	Product setup.StaticConfig

	// SourceDir is the release tree to package.
	SourceDir string

	// WorkDir anchors relative output paths.
	WorkDir string

	// StrictVersion requires the whole argument to be a three-component version.
	StrictVersion bool
}

// Packager runs validate, derive, build and compile in order and stops at
// the first error. Each Package call is independent.
type Packager struct {
	builder  *descriptor.Builder
	compiler setup.Compiler
	logger   setup.Logger
}

// NewPackager creates a Packager with all dependencies injected.
// Panics on nil dependencies; those are programmer errors.
func NewPackager(builder *descriptor.Builder, compiler setup.Compiler, logger setup.Logger) *Packager {
	if builder == nil {
		panic("builder cannot be nil")
	}
	if compiler == nil {
		panic("compiler cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Packager{builder: builder, compiler: compiler, logger: logger}
}

// Describe validates args and builds the descriptor without compiling it.
func (p *Packager) Describe(args []string, cfg PackageConfig) (*setup.Descriptor, error) {
	v, err := version.NewValidator(p.logger, cfg.StrictVersion).Validate(args)
	if err != nil {
		return nil, err
	}
	p.logger.Verbose("Version: %s", v)

	// The identity must be derived from v right before building; Build trusts it.
	id := identity.ForVersion(cfg.Product.ProductName, v)
	p.logger.Verbose("Product code: %s", id)

	d, err := p.builder.Build(v, id, cfg.Product, cfg.SourceDir, cfg.WorkDir)
	if err != nil {
		return nil, err
	}
	p.logger.Verbose("Resolved %d file(s) from %s", len(d.FileSet.Files), d.SourceDir)
	return d, nil
}

// Package builds the descriptor for args[0] and hands it to the compiler.
func (p *Packager) Package(ctx context.Context, args []string, cfg PackageConfig) (setup.Artifact, error) {
	d, err := p.Describe(args, cfg)
	if err != nil {
		return setup.Artifact{}, err
	}

	p.logger.Info("Packaging %s %s", d.Name, d.Version)
	art, err := p.compiler.Compile(ctx, d)
	if err != nil {
		return art, fmt.Errorf("failed to compile %s: %w", d.OutFileName, err)
	}

	if art.InstallerPath != "" {
		p.logger.Info("Installer written to %s", art.InstallerPath)
	}
	return art, nil
}
