// Package versionutil provides version comparison utilities for providers.
package versionutil

import (
	"strings"

	"golang.org/x/mod/semver"
)

// IsOlder reports whether installed is older than desired. Versions are
// compared as semver when both parse; otherwise any difference counts as
// older, which routes the step through its update path.
func IsOlder(installed, desired string) bool {
	if installed == desired {
		return false
	}
	iv := canonical(installed)
	dv := canonical(desired)
	if semver.IsValid(iv) && semver.IsValid(dv) {
		return semver.Compare(iv, dv) < 0
	}
	return true
}

// Matches reports whether installed satisfies desired exactly, ignoring a
// leading "v".
func Matches(installed, desired string) bool {
	return strings.TrimPrefix(installed, "v") == strings.TrimPrefix(desired, "v")
}

func canonical(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
