package shim

import "github.com/Masterminds/semver/v3"

// Version is the version of the resvg API implemented.
// It must be kept in sync with RESVG_VERSION in capi/resvg_types.h.
const Version = "0.45.1"

// SemVer returns the parsed Version.
func SemVer() *semver.Version {
	return semver.MustParse(Version)
}
