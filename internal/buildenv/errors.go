// SPDX-License-Identifier: MPL-2.0

package buildenv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEnvironmentCollision is the sentinel error wrapped by EnvironmentCollisionError.
var ErrEnvironmentCollision = errors.New("environment key collision")

// EnvironmentCollisionError is returned when the updater contributes a
// variable whose name is already taken by a core build variable.
type EnvironmentCollisionError struct {
	// Keys lists every colliding key, sorted.
	Keys []string
}

// Error implements the error interface.
func (e *EnvironmentCollisionError) Error() string {
	return fmt.Sprintf("updater environment overrides build variables: %s", strings.Join(e.Keys, ", "))
}

// Unwrap returns ErrEnvironmentCollision for errors.Is() compatibility.
func (e *EnvironmentCollisionError) Unwrap() error { return ErrEnvironmentCollision }
