// SPDX-License-Identifier: MPL-2.0

// Package buildenv composes the environment handed to the packaging
// subprocess: application metadata, PHP binary locations and the updater
// configuration, in a fixed key order.
package buildenv
