// Package files groups release file discovery.
//
// Sub-packages:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: pattern matching over a release tree and file record extraction
//
// # Usage
//
//	import (
//	    "github.com/LotCoM/watcher-setup/internal/checksum"
//	    "github.com/LotCoM/watcher-setup/internal/files/scanner"
//	)
//
//	enumerator := scanner.NewScanner(checksum.New())
//	records, err := enumerator.Enumerate(sourceDir, "*.*")
package files
