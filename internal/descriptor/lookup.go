package descriptor

import (
	"fmt"
	"strings"

	"github.com/LotCoM/watcher-setup/pkg/setup"
)

// LookupStatus is the outcome of searching a file set for the target executable.
type LookupStatus int

const (
	NotFound LookupStatus = iota
	Found
	Ambiguous
)

func (s LookupStatus) String() string {
	switch s {
	case Found:
		return "found"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not found"
	}
}

// Lookup is the result of FindExecutable. Index is valid only when Status
// is Found; Candidates lists every match when Status is Ambiguous.
type Lookup struct {
	Status     LookupStatus
	Index      int
	Candidates []string
}

// FindExecutable returns the single file whose name ends with name.
// The suffix match means "LotComWatcher.exe" also matches a file named
// "OldLotComWatcher.exe"; both count towards ambiguity.
func FindExecutable(files []setup.FileRecord, name string) Lookup {
	var matches []int
	for i, f := range files {
		if strings.HasSuffix(f.Name, name) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return Lookup{Status: NotFound, Index: -1}
	case 1:
		return Lookup{Status: Found, Index: matches[0]}
	default:
		candidates := make([]string, 0, len(matches))
		for _, i := range matches {
			candidates = append(candidates, files[i].RelativePath)
		}
		return Lookup{Status: Ambiguous, Index: -1, Candidates: candidates}
	}
}

// ExecutableError reports a failed executable lookup together with the
// file set that was searched.
type ExecutableError struct {
	Name       string
	Status     LookupStatus
	Candidates []string
	FileSet    []string
}

func (e *ExecutableError) Error() string {
	var b strings.Builder
	if e.Status == Ambiguous {
		fmt.Fprintf(&b, "executable %q is ambiguous: %d files match (%s)",
			e.Name, len(e.Candidates), strings.Join(e.Candidates, ", "))
	} else {
		fmt.Fprintf(&b, "executable %q not found in file set", e.Name)
	}

	b.WriteString("\n\nResolved file set:")
	if len(e.FileSet) == 0 {
		b.WriteString("\n  (empty)")
	}
	for _, p := range e.FileSet {
		b.WriteString("\n  " + p)
	}
	return b.String()
}

// Unwrap maps the lookup status onto its sentinel.
func (e *ExecutableError) Unwrap() error {
	if e.Status == Ambiguous {
		return setup.ErrAmbiguousExecutable
	}
	return setup.ErrExecutableNotFound
}

func newExecutableError(name string, lookup Lookup, files []setup.FileRecord) *ExecutableError {
	set := make([]string, 0, len(files))
	for _, f := range files {
		set = append(set, f.RelativePath)
	}
	return &ExecutableError{
		Name:       name,
		Status:     lookup.Status,
		Candidates: lookup.Candidates,
		FileSet:    set,
	}
}
