// SPDX-License-Identifier: MPL-2.0

// Package phpbin locates the PHP binaries bundled with the application and
// reports which processor architectures can be built for each OS.
package phpbin
