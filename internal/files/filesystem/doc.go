// Package filesystem provides the file tree abstraction release files are
// enumerated through.
//
// Key interfaces:
//   - FileSystemProvider: opens source roots and stats paths
//   - Directory: a source root that can be walked
//   - File: one entry found while walking
//
// Implementations:
//   - OSFileSystem: production implementation over the OS filesystem
//   - MemoryFileSystem: in-memory implementation for tests
//
// Missing paths are reported with errors wrapping fs.ErrNotExist in both
// implementations.
package filesystem
