// Package version validates release version tokens supplied on the command line.
package version

import (
	"fmt"
	"regexp"

	"github.com/LotCoM/watcher-setup/pkg/setup"
)

// Kind classifies a validation failure.
type Kind int

const (
	KindMissing Kind = iota
	KindMalformed
)

var (
	// containsPattern accepts any input containing a three-component
	// dotted numeric run, e.g. "1.2.3" or "0.3.01.21" or "1.2.3-rc1".
	containsPattern = regexp.MustCompile(`[0-9]+\.[0-9]+\.[0-9]+`)

	// strictPattern requires the whole input to be exactly three components.
	strictPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)
)

// ValidationError reports why a version argument was rejected.
type ValidationError struct {
	Kind  Kind
	Value string
}

func (e *ValidationError) Error() string {
	if e.Kind == KindMissing {
		return "No version number provided; exiting setup."
	}
	return fmt.Sprintf("'%s' is not a valid version number; exiting setup.", e.Value)
}

// Unwrap maps the failure kind onto its sentinel so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	if e.Kind == KindMissing {
		return setup.ErrMissingVersion
	}
	return setup.ErrMalformedVersion
}

// Validator checks the first command-line argument as a release version.
type Validator struct {
	logger setup.Logger
	strict bool
}

// NewValidator creates a Validator that reports failures through logger.
// Panics if logger is nil.
func NewValidator(logger setup.Logger, strict bool) *Validator {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Validator{logger: logger, strict: strict}
}

// Validate returns args[0] unchanged when it is an acceptable version.
// An empty args slice or an empty first element is a missing version.
func (v *Validator) Validate(args []string) (setup.Version, error) {
	token, err := check(args, v.pattern())
	if err != nil {
		v.logger.Error("%s", err.Error())
		return "", err
	}
	return token, nil
}

func (v *Validator) pattern() *regexp.Regexp {
	if v.strict {
		return strictPattern
	}
	return containsPattern
}

// Validate checks args with the default lenient grammar and no logging.
func Validate(args []string) (setup.Version, error) {
	return check(args, containsPattern)
}

// ValidateStrict checks args requiring a full three-component match.
func ValidateStrict(args []string) (setup.Version, error) {
	return check(args, strictPattern)
}

func check(args []string, pattern *regexp.Regexp) (setup.Version, error) {
	if len(args) < 1 || args[0] == "" {
		return "", &ValidationError{Kind: KindMissing}
	}
	if !pattern.MatchString(args[0]) {
		return "", &ValidationError{Kind: KindMalformed, Value: args[0]}
	}
	return setup.Version(args[0]), nil
}
