// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on error,
// plus AppRoot, a throwaway NativePHP application tree.
package testutil
