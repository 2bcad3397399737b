// SPDX-License-Identifier: MPL-2.0

package runtime

import "context"

// Output streams a Line can come from.
const (
	StreamStdout Stream = iota
	StreamStderr
	// StreamTerminal is the merged output of a pseudo-terminal.
	StreamTerminal
)

type (
	// Stream identifies where an output line was read from.
	Stream int

	// Line is one line of subprocess output, without its line terminator.
	Line struct {
		Stream Stream
		Text   string
		// Partial is set for terminal output that has not been terminated
		// yet, such as a prompt waiting for input. The next line continues it.
		Partial bool
		// Raw is set for terminal output read while the local terminal was
		// in raw mode; echoing it needs an explicit carriage return.
		Raw bool
	}

	// Invocation describes one subprocess run.
	Invocation struct {
		// Dir is the working directory.
		Dir string
		// Env holds "KEY=value" entries merged over the ambient environment.
		Env []string
		// CommandLine is split into arguments with POSIX shell word rules;
		// no shell process is involved.
		CommandLine string
		// Interactive requests a pseudo-terminal. It is ignored on hosts
		// without terminal support.
		Interactive bool
		// Forever disables the run time limit.
		Forever bool
	}

	// Runner starts subprocesses.
	Runner interface {
		Start(ctx context.Context, inv Invocation) (*Execution, error)
	}
)

// String returns the stream name.
func (s Stream) String() string {
	switch s {
	case StreamStdout:
		return "stdout"
	case StreamStderr:
		return "stderr"
	case StreamTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Run starts inv on r, hands every output line to onLine and waits for the
// command to finish. onLine may be nil.
func Run(ctx context.Context, r Runner, inv Invocation, onLine func(Line)) error {
	execution, err := r.Start(ctx, inv)
	if err != nil {
		return err
	}
	for line := range execution.Lines() {
		if onLine != nil {
			onLine(line)
		}
	}
	return execution.Wait()
}
