// SPDX-License-Identifier: MPL-2.0

package build

import (
	"errors"
	"fmt"
)

// Pipeline steps, in execution order.
const (
	StepPreflight Step = iota
	StepFrontendUpdate
	StepBackendInstall
	StepResolveTarget
	StepComposeEnvironment
	StepPackage
)

// ErrStepFailed is the sentinel error wrapped by StepFailedError.
var ErrStepFailed = errors.New("build step failed")

type (
	// Step identifies one stage of the pipeline.
	Step int

	// StepFailedError names the step that aborted the pipeline.
	StepFailedError struct {
		Step Step
		Err  error
	}
)

// String returns a human-readable step name.
func (s Step) String() string {
	switch s {
	case StepPreflight:
		return "preflight checks"
	case StepFrontendUpdate:
		return "frontend dependency update"
	case StepBackendInstall:
		return "backend dependency install"
	case StepResolveTarget:
		return "build target selection"
	case StepComposeEnvironment:
		return "build environment composition"
	case StepPackage:
		return "packaging"
	default:
		return fmt.Sprintf("step %d", int(s))
	}
}

// Error implements the error interface.
func (e *StepFailedError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

// Unwrap returns ErrStepFailed and the cause.
func (e *StepFailedError) Unwrap() []error {
	return []error{ErrStepFailed, e.Err}
}
