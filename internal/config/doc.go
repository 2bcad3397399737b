// SPDX-License-Identifier: MPL-2.0

// Package config loads the project configuration using Viper with CUE as the
// file format.
//
// Configuration is read from nativebuild.cue in the application root (or the
// file given with --config), validated against the embedded schema
// (config_schema.cue) and layered over built-in defaults. NATIVEBUILD_*
// environment variables override file values; the project .env file provides
// the same overrides plus the values referenced with ${VAR} in the file.
package config
