// Package descriptor assembles installer package descriptors from a
// validated version, its derived product code and static configuration.
package descriptor

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/LotCoM/watcher-setup/pkg/setup"
)

// Builder assembles descriptors. It is stateless apart from its enumerator.
type Builder struct {
	enumerator setup.FileEnumerator
}

// NewBuilder creates a Builder resolving file sets through enumerator.
// Panics if enumerator is nil.
func NewBuilder(enumerator setup.FileEnumerator) *Builder {
	if enumerator == nil {
		panic("enumerator cannot be nil")
	}
	return &Builder{enumerator: enumerator}
}

// OutFileName returns the installer base name for a version: "<base>_<version>".
func OutFileName(cfg setup.StaticConfig, v setup.Version) string {
	return cfg.ProductBaseName + "_" + v.String()
}

// Build assembles the descriptor for version v.
//
// The caller must pass the id derived from v immediately before the call;
// Build does not re-derive or check it. sourceDir is the release tree the
// file set is resolved against, and relative OutputDir values are resolved
// against workDir.
//
// Build either returns a fully populated descriptor or an error. File
// enumeration errors are returned wrapped and never retried.
func (b *Builder) Build(v setup.Version, id uuid.UUID, cfg setup.StaticConfig, sourceDir, workDir string) (*setup.Descriptor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	files, err := b.enumerator.Enumerate(sourceDir, cfg.FilePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file set in %s: %w", sourceDir, err)
	}

	lookup := FindExecutable(files, cfg.TargetExecutable)
	if lookup.Status != Found {
		return nil, newExecutableError(cfg.TargetExecutable, lookup, files)
	}

	exe := &files[lookup.Index]
	exe.Shortcuts = make([]setup.Shortcut, 0, len(cfg.Shortcuts))
	for _, def := range cfg.Shortcuts {
		exe.Shortcuts = append(exe.Shortcuts, setup.Shortcut{
			Name:     def.Name,
			Target:   exe.RelativePath,
			Location: def.Location,
		})
	}

	outDir := cfg.OutputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	name := OutFileName(cfg, v)
	d := &setup.Descriptor{
		Name:            cfg.ProductName,
		ProductID:       id,
		UpgradeCode:     cfg.UpgradeCode,
		Version:         v,
		UpgradeStrategy: setup.MajorUpgradeDefault,
		InstallDir:      cfg.InstallDir,
		SourceDir:       sourceDir,
		FileSet: setup.FileSet{
			Pattern: cfg.FilePattern,
			Files:   files,
		},
		ControlPanel: cfg.ControlPanel,
		CloseAction: setup.CloseAction{
			ID:           name,
			Target:       cfg.CloseTarget,
			Timeout:      cfg.CloseTimeout,
			ShowCloseMsg: false,
			PromptReboot: false,
		},
		UI:          cfg.UI,
		OutDir:      outDir,
		OutFileName: name,
		ReleaseEnv:  map[string]string{setup.ReleaseEnvVar: v.String()},
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
