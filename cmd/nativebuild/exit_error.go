// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/nativebuild/nativebuild/pkg/types"
)

// Exit codes for failures that happen before any subprocess has run. A
// failing subprocess passes its own exit code through instead.
const (
	ExitUsage                types.ExitCode = 2
	ExitUnsupportedHost      types.ExitCode = 3
	ExitEnvironmentCollision types.ExitCode = 4
	ExitConfig               types.ExitCode = 5
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
