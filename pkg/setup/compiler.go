package setup

import "context"

// Compiler turns a fully built descriptor into an installer artifact.
// Implementations wrap engine failures with ErrCompilationFailed.
type Compiler interface {
	Compile(ctx context.Context, d *Descriptor) (Artifact, error)
}

// Artifact describes what a Compiler produced on disk.
type Artifact struct {
	// SourcePath is the generated engine source document (.wxs).
	SourcePath string

	// EnvPath is the release env file written for downstream tooling.
	EnvPath string

	// ManifestPath is the YAML dump of the descriptor.
	ManifestPath string

	// InstallerPath is the compiled installer. Empty when the engine was skipped.
	InstallerPath string
}
