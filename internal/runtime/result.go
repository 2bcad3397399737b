// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"

	"github.com/nativebuild/nativebuild/pkg/types"
)

// ErrSubprocessFailed is the sentinel error wrapped by SubprocessFailedError.
var ErrSubprocessFailed = errors.New("subprocess failed")

// SubprocessFailedError is returned by Execution.Wait when the command exits
// non-zero, cannot be started, times out or is interrupted.
type SubprocessFailedError struct {
	CommandLine string
	ExitCode    types.ExitCode
	// TimedOut is set when the run time limit killed the command.
	TimedOut bool
	// Interrupted is set when the caller's context was cancelled.
	Interrupted bool
	// Err is the underlying cause when the command did not exit on its own.
	Err error
}

// Error implements the error interface.
func (e *SubprocessFailedError) Error() string {
	switch {
	case e.TimedOut:
		return fmt.Sprintf("command %q timed out", e.CommandLine)
	case e.Interrupted:
		return fmt.Sprintf("command %q was interrupted", e.CommandLine)
	case e.Err != nil:
		return fmt.Sprintf("command %q failed: %v", e.CommandLine, e.Err)
	default:
		return fmt.Sprintf("command %q exited with code %d", e.CommandLine, e.ExitCode)
	}
}

// Unwrap returns ErrSubprocessFailed and the underlying cause, if any.
func (e *SubprocessFailedError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSubprocessFailed, e.Err}
	}
	return []error{ErrSubprocessFailed}
}
