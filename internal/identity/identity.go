// Package identity derives deterministic product codes for release packages.
//
// A product code identifies one product+version combination in the
// installed-software registry. It is derived, never generated: the same
// seed always yields the same code on every machine and every run.
//
// Algorithm:
//   - SHA-256 of the UTF-8 seed
//   - first 16 bytes of the digest
//   - the first three GUID fields read little-endian (mixed-endian GUID layout)
//
// The mixed-endian read matches the product codes registered by every
// previously shipped installer; reading the digest big-endian would assign
// existing versions new codes.
//
// Example:
//
//	seed: "LotCom Watcher 1.2.3"
//	code: 7c944604-45fd-8922-30e8-91abb9c16a16
package identity

import (
	"crypto/sha256"

	"github.com/google/uuid"

	"github.com/LotCoM/watcher-setup/pkg/setup"
)

// Seed returns the identity seed for a product version: "<name> <version>".
func Seed(productName string, v setup.Version) string {
	return productName + " " + v.String()
}

// Derive maps seed to a product code. It is pure and total.
func Derive(seed string) uuid.UUID {
	sum := sha256.Sum256([]byte(seed))

	var id uuid.UUID
	// Data1 (4 bytes), Data2 (2 bytes) and Data3 (2 bytes) are little-endian.
	id[0], id[1], id[2], id[3] = sum[3], sum[2], sum[1], sum[0]
	id[4], id[5] = sum[5], sum[4]
	id[6], id[7] = sum[7], sum[6]
	copy(id[8:], sum[8:16])

	return id
}

// ForVersion derives the product code for productName at version v.
func ForVersion(productName string, v setup.Version) uuid.UUID {
	return Derive(Seed(productName, v))
}
