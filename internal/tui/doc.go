// SPDX-License-Identifier: MPL-2.0

// Package tui provides the terminal prompts used to ask for build targets.
//
// Prompts are built on charmbracelet/huh. When stdin is not a terminal or
// the ACCESSIBLE environment variable is set, huh's accessible mode is used
// so prompts degrade to plain line-based questions.
package tui
