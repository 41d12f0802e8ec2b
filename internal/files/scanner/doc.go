// Package scanner resolves a release file-set pattern into file records.
//
// Patterns are matched against paths relative to the source root, with
// forward slashes, using github.com/gobwas/glob with '/' as the separator
// for single-segment wildcards. The pattern "*.*" is special-cased to match
// any file whose base name contains a dot, at any depth, mirroring the
// wildcard resolution installers have always used for release trees.
package scanner
