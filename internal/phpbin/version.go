// SPDX-License-Identifier: MPL-2.0

package phpbin

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidPHPVersion is the sentinel error wrapped by InvalidPHPVersionError.
var ErrInvalidPHPVersion = errors.New("invalid PHP version")

// InvalidPHPVersionError is returned when a configured PHP version is not a
// dotted version number.
type InvalidPHPVersionError struct {
	Value string
}

// Error implements the error interface.
func (e *InvalidPHPVersionError) Error() string {
	return fmt.Sprintf("invalid PHP version %q (expected e.g. 8.3 or 8.3.12)", e.Value)
}

// Unwrap returns ErrInvalidPHPVersion for errors.Is() compatibility.
func (e *InvalidPHPVersionError) Unwrap() error { return ErrInvalidPHPVersion }

// NormalizeVersion reduces a PHP version such as "8.3.12" or "v8.3" to its
// "<major>.<minor>" form.
func NormalizeVersion(version string) (string, error) {
	v := strings.TrimSpace(version)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) || semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return "", &InvalidPHPVersionError{Value: version}
	}
	return strings.TrimPrefix(semver.MajorMinor(v), "v"), nil
}
