// SPDX-License-Identifier: MPL-2.0

// Package runtime runs the external commands of a build: the dependency
// updaters and the packaging script.
//
// A Runner starts one Invocation and returns an Execution. Output is
// consumed through Execution.Lines, a lazy sequence of lines that can be
// ranged over once; the pass/fail result is Execution.Wait. Non-interactive
// invocations read stdout and stderr through pipes and tag each line with
// its stream. Interactive invocations run on a pseudo-terminal with stdin
// forwarded, so prompts issued by the child can be answered.
package runtime
