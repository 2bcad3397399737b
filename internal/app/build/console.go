// SPDX-License-Identifier: MPL-2.0

package build

import (
	"io"

	"github.com/nativebuild/nativebuild/internal/runtime"
)

// consoleWriter echoes subprocess output as it arrives.
type consoleWriter struct {
	w io.Writer
}

func (c consoleWriter) writeLine(line runtime.Line) {
	if c.w == nil {
		return
	}
	switch {
	case line.Partial:
		_, _ = io.WriteString(c.w, line.Text)
	case line.Raw:
		// A bare newline does not return the cursor in raw mode.
		_, _ = io.WriteString(c.w, line.Text+"\r\n")
	default:
		_, _ = io.WriteString(c.w, line.Text+"\n")
	}
}
