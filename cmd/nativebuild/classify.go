// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/nativebuild/nativebuild/internal/app/build"
	"github.com/nativebuild/nativebuild/internal/buildenv"
	"github.com/nativebuild/nativebuild/internal/config"
	"github.com/nativebuild/nativebuild/internal/issue"
	"github.com/nativebuild/nativebuild/internal/phpbin"
	"github.com/nativebuild/nativebuild/internal/runtime"
	"github.com/nativebuild/nativebuild/internal/target"
	"github.com/nativebuild/nativebuild/internal/tui"
	"github.com/nativebuild/nativebuild/internal/updater"
	"github.com/nativebuild/nativebuild/pkg/types"
)

// classifyBuildError maps a build failure to the process exit code and the
// issue catalog entry explaining it. A failed subprocess passes its own exit
// code through.
func classifyBuildError(err error) (types.ExitCode, issue.Id) {
	var subErr *runtime.SubprocessFailedError
	if errors.As(err, &subErr) {
		return subprocessExitCode(subErr), subprocessIssue(err, subErr)
	}

	switch {
	case errors.Is(err, target.ErrMissingArgument), errors.Is(err, target.ErrInvalidPublishValue):
		return ExitUsage, issue.MissingArgumentId
	case errors.Is(err, target.ErrUnsupportedHost):
		return ExitUnsupportedHost, issue.HostNotSupportedId
	case errors.Is(err, buildenv.ErrEnvironmentCollision):
		return ExitEnvironmentCollision, issue.EnvironmentCollisionId
	case errors.Is(err, tui.ErrCancelled):
		return types.ExitInterrupted, issue.PromptCancelledId
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, config.ErrDotEnvSyntax),
		errors.Is(err, phpbin.ErrInvalidPHPVersion),
		errors.Is(err, updater.ErrUnknownProvider):
		return ExitConfig, issue.ConfigLoadFailedId
	}

	if id := issue.IssueOf(err); id != nil {
		if id.Id() == issue.ConfigLoadFailedId {
			return ExitConfig, id.Id()
		}
		return types.ExitFailure, id.Id()
	}
	return types.ExitFailure, 0
}

func subprocessExitCode(subErr *runtime.SubprocessFailedError) types.ExitCode {
	if subErr.ExitCode.IsSuccess() {
		return types.ExitFailure
	}
	return subErr.ExitCode.Normalize()
}

func subprocessIssue(err error, subErr *runtime.SubprocessFailedError) issue.Id {
	switch {
	case subErr.Interrupted:
		return 0
	case subErr.TimedOut:
		return issue.SubprocessTimedOutId
	case subErr.ExitCode == types.ExitNotFound:
		return issue.CommandNotFoundId
	}

	var stepErr *build.StepFailedError
	if errors.As(err, &stepErr) {
		switch stepErr.Step {
		case build.StepFrontendUpdate:
			return issue.FrontendUpdateFailedId
		case build.StepBackendInstall:
			return issue.BackendInstallFailedId
		case build.StepPackage:
			return issue.PackagingFailedId
		}
	}
	return issue.SubprocessFailedId
}
