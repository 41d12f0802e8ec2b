package setup

// FileEnumerator expands a file-set pattern into concrete file records.
type FileEnumerator interface {
	// Enumerate walks sourceDir and returns every regular file whose path
	// relative to sourceDir matches pattern. Records are sorted by
	// relative path.
	Enumerate(sourceDir, pattern string) ([]FileRecord, error)
}
