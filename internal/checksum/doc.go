// Package checksum computes content digests for release file records.
//
// The digests are recorded in the package manifest so that a build can be
// compared against the exact release tree it was made from.
package checksum
