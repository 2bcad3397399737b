// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the nativebuild command-line interface.
package cmd
