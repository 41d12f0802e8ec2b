package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// Calculator computes file checksums.
type Calculator interface {
	// Calculate returns the hex digest of content.
	Calculate(content []byte) string

	// CalculateReader returns the hex digest of everything read from r.
	CalculateReader(r io.Reader) (string, error)
}

// SHA256 implements Calculator using SHA-256.
// SHA256 is a zero-size type and is safe for concurrent use.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// Calculate computes SHA-256 of content.
func (c SHA256) Calculate(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateReader computes SHA-256 of r without buffering it whole.
func (c SHA256) CalculateReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
