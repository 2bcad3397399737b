// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema.
//
// Decoding happens in three steps: the schema is compiled, the user document
// is compiled and unified with the schema definition, and the result is
// validated and decoded into a Go value. Errors carry the file name and the
// path of the offending field, e.g. "nativebuild.cue: process.timeout: ...".
//
//	//go:embed config_schema.cue
//	var configSchema string
//
//	result, err := cueutil.ParseAndDecodeString[map[string]any](
//	    configSchema, data, "#Config",
//	    cueutil.WithFilename("nativebuild.cue"),
//	)
package cueutil
