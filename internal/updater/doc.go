// SPDX-License-Identifier: MPL-2.0

// Package updater describes the auto-update channel baked into packaged
// applications: the builder options handed to the packaging tool and the
// credentials it needs to publish a release.
package updater
