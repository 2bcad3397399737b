// SPDX-License-Identifier: MPL-2.0

// Package target resolves which operating system, processor architecture and
// publish mode a build is produced for.
//
// A BuildTarget is assembled once per invocation from the positional CLI
// arguments. Values that were not supplied are asked for through a Prompter,
// defaulting to the host operating system, the recommended architecture
// reported by an ArchLister, and "do not publish".
//
// Explicit os/arch values are intentionally not validated: the packaging tool
// owns the list of script names and rejects unknown ones itself.
package target
