// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runtime

import (
	"errors"
	"os"
	"os/exec"
)

var errTerminalUnsupported = errors.New("pseudo-terminals are not supported on windows")

// startTerminal is unreachable in practice: interactive invocations fall back
// to pipes on windows.
func startTerminal(*exec.Cmd, *os.File) (*os.File, error) {
	return nil, errTerminalUnsupported
}
