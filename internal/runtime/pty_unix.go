// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runtime

import (
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// startTerminal starts cmd on a new pseudo-terminal sized like stdin when
// stdin is a terminal.
func startTerminal(cmd *exec.Cmd, stdin *os.File) (*os.File, error) {
	if stdin != nil {
		if size, err := pty.GetsizeFull(stdin); err == nil {
			return pty.StartWithSize(cmd, size)
		}
	}
	return pty.Start(cmd)
}
