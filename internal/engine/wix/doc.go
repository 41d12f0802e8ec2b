// Package wix adapts package descriptors to the WiX toolset.
//
// A descriptor is rendered to a WiX v4 source document (.wxs) and compiled
// with `wix build`. Next to the source the compiler writes:
//   - <name>.release.env: the release identifier for downstream tooling
//   - <name>.manifest.yaml: the descriptor as built, including file checksums
//
// The engine process receives its working directory and release variables
// explicitly; the calling process's environment and working directory are
// never changed.
package wix
