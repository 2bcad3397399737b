// SPDX-License-Identifier: MPL-2.0

// Package build sequences the packaging pipeline: frontend dependency update,
// backend dependency install, target resolution, environment composition and
// the final packaging run. Exactly one subprocess runs at a time and the first
// failure aborts the remaining steps.
package build
