package scanner

import (
	"fmt"
	"path"
	"sort"

	"github.com/gobwas/glob"

	"github.com/LotCoM/watcher-setup/internal/checksum"
	"github.com/LotCoM/watcher-setup/internal/files/filesystem"
	"github.com/LotCoM/watcher-setup/pkg/setup"
)

// Scanner discovers release files under a source root.
// Scanner is safe for concurrent use as long as the calculator and
// fsProvider are.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over the OS filesystem.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// matchAll selects every regular file at any depth, with or without an
// extension.
type matchAll struct{}

func (matchAll) Match(string) bool { return true }

// CompilePattern compiles a file-set pattern. The default pattern selects
// every file under the source root; any other pattern is a glob over the
// slash-separated relative path.
func CompilePattern(pattern string) (glob.Glob, error) {
	if pattern == setup.DefaultFilePattern {
		return matchAll{}, nil
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}
	return g, nil
}

// Enumerate walks sourceDir and returns a record for every regular file
// whose relative path matches pattern, sorted by relative path.
// I/O errors are returned as-is wrapped with the failing path.
func (s *Scanner) Enumerate(sourceDir, pattern string) ([]setup.FileRecord, error) {
	matcher, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}

	dir, err := s.fsProvider.Open(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open source directory: %w", err)
	}

	var records []setup.FileRecord
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if file.Info().IsDir() {
			return nil
		}

		rel := file.RelativePath()
		if !matcher.Match(rel) {
			return nil
		}

		record, err := s.processFile(file)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", rel, err)
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].RelativePath < records[j].RelativePath
	})
	return records, nil
}

func (s *Scanner) processFile(file filesystem.File) (setup.FileRecord, error) {
	r, err := file.Open()
	if err != nil {
		return setup.FileRecord{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer r.Close()

	sum, err := s.calculator.CalculateReader(r)
	if err != nil {
		return setup.FileRecord{}, fmt.Errorf("failed to read file: %w", err)
	}

	rel := file.RelativePath()
	return setup.FileRecord{
		Path:         file.Path(),
		RelativePath: rel,
		Name:         path.Base(rel),
		SizeBytes:    file.Info().Size(),
		Checksum:     sum,
	}, nil
}

// Verify Scanner implements the interface at compile time
var _ setup.FileEnumerator = (*Scanner)(nil)
