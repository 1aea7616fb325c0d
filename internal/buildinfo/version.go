// Package buildinfo gives the allocator's on-disk block header encoding an
// explicit, checkable version, so a caller persisting pool blocks across
// process restarts can refuse to run against an incompatible build.
package buildinfo

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// HeaderFormatVersion is the semantic version of the header encoding this
// package implements: a single machine word with the low 5 bits reserved
// for flags (only bit 0, allocated, currently used) and the high bits
// holding a 32-byte-aligned total size. A minor bump signals a
// backward-compatible change such as a new flag bit; the major version
// guards the header's bit layout itself.
const HeaderFormatVersion = "1.0.0"

// CheckCompatible reports whether this build's header format satisfies
// constraint (e.g. "^1.0.0").
func CheckCompatible(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("buildinfo: parse constraint %q: %w", constraint, err)
	}

	v, err := semver.NewVersion(HeaderFormatVersion)
	if err != nil {
		return false, fmt.Errorf("buildinfo: parse version %q: %w", HeaderFormatVersion, err)
	}

	return c.Check(v), nil
}
