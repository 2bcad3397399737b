// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/nativebuild/nativebuild/pkg/platform"
	"github.com/nativebuild/nativebuild/pkg/types"

	"golang.org/x/term"
	"mvdan.cc/sh/v3/shell"
)

// DefaultTimeout is the run time limit of invocations that are not Forever.
const DefaultTimeout = 60 * time.Second

const (
	// waitDelay bounds how long Wait keeps reading output after the process
	// exited, for children that leave grandchildren holding the pipes.
	waitDelay = 5 * time.Second
	// terminalDrainTimeout bounds the same for the pseudo-terminal reader.
	terminalDrainTimeout = 2 * time.Second
)

// ErrEmptyCommandLine is returned when an Invocation has no command to run.
var ErrEmptyCommandLine = errors.New("empty command line")

type (
	// NativeRunnerOption configures a NativeRunner.
	NativeRunnerOption func(*NativeRunner)

	// NativeRunner runs commands directly on the host.
	NativeRunner struct {
		timeout time.Duration
		stdin   io.Reader
		hostOS  string
		sandbox platform.SandboxType
		environ func() []string
	}
)

// NewNativeRunner creates a NativeRunner for the current host.
func NewNativeRunner(opts ...NativeRunnerOption) *NativeRunner {
	r := &NativeRunner{
		timeout: DefaultTimeout,
		stdin:   os.Stdin,
		hostOS:  platform.HostOS(),
		sandbox: platform.DetectSandbox(),
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithTimeout sets the run time limit. Zero or negative disables it.
func WithTimeout(d time.Duration) NativeRunnerOption {
	return func(r *NativeRunner) { r.timeout = d }
}

// WithStdin sets the input forwarded to interactive commands.
func WithStdin(stdin io.Reader) NativeRunnerOption {
	return func(r *NativeRunner) { r.stdin = stdin }
}

// WithHostOS overrides the runtime.GOOS value used to decide terminal support.
func WithHostOS(goos string) NativeRunnerOption {
	return func(r *NativeRunner) { r.hostOS = goos }
}

// WithSandbox overrides sandbox detection.
func WithSandbox(st platform.SandboxType) NativeRunnerOption {
	return func(r *NativeRunner) { r.sandbox = st }
}

// WithBaseEnv replaces the ambient environment the invocation env is merged over.
func WithBaseEnv(env []string) NativeRunnerOption {
	return func(r *NativeRunner) { r.environ = func() []string { return env } }
}

// Start launches inv. The returned Execution must be waited on.
func (r *NativeRunner) Start(ctx context.Context, inv Invocation) (*Execution, error) {
	env := MergeEnv(r.environ(), inv.Env)

	argv, err := shell.Fields(inv.CommandLine, lookupEnv(env))
	if err != nil {
		return nil, fmt.Errorf("parse command line %q: %w", inv.CommandLine, err)
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommandLine
	}
	argv = platform.WrapArgv(r.sandbox, argv, inv.Env)

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if !inv.Forever && r.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = inv.Dir
	cmd.Env = env
	cmd.WaitDelay = waitDelay

	execution := newExecution(inv.CommandLine)
	wait := func(waitErr error) error {
		defer cancel()
		return failure(ctx, runCtx, inv.CommandLine, waitErr)
	}

	if inv.Interactive && platform.SupportsPTY(r.hostOS) {
		err = r.startTerminal(cmd, execution, wait)
	} else {
		err = startPipes(cmd, execution, wait)
	}
	if err != nil {
		cancel()
		return nil, startFailure(inv.CommandLine, err)
	}
	return execution, nil
}

func startPipes(cmd *exec.Cmd, execution *Execution, wait func(error) error) error {
	stdout := newLineWriter(StreamStdout, false, execution.emit)
	stderr := newLineWriter(StreamStderr, false, execution.emit)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		waitErr := cmd.Wait()
		stdout.Flush()
		stderr.Flush()
		execution.finish(wait(waitErr))
	}()
	return nil
}

func (r *NativeRunner) startTerminal(cmd *exec.Cmd, execution *Execution, wait func(error) error) error {
	stdinFile, _ := r.stdin.(*os.File)

	ptmx, err := startTerminal(cmd, stdinFile)
	if err != nil {
		return err
	}

	restore, raw := r.forwardInput(ptmx, stdinFile)
	out := newLineWriter(StreamTerminal, true, execution.emit)
	out.raw = raw

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		// Reading a terminal whose child side is gone fails with EIO; that
		// is the normal end of output.
		_, _ = io.Copy(out, ptmx)
	}()

	go func() {
		waitErr := cmd.Wait()
		select {
		case <-readDone:
		case <-time.After(terminalDrainTimeout):
		}
		_ = ptmx.Close()
		<-readDone
		restore()
		out.Flush()
		execution.finish(wait(waitErr))
	}()
	return nil
}

// forwardInput copies r.stdin to the terminal, switching a real terminal on
// stdin to raw mode so keystrokes reach the child unprocessed. The returned
// function restores the terminal state; raw reports whether raw mode was
// entered.
func (r *NativeRunner) forwardInput(ptmx io.Writer, stdinFile *os.File) (restore func(), raw bool) {
	restore = func() {}
	if r.stdin == nil {
		return restore, false
	}

	if stdinFile != nil && term.IsTerminal(int(stdinFile.Fd())) {
		if state, err := term.MakeRaw(int(stdinFile.Fd())); err == nil {
			restore = func() { _ = term.Restore(int(stdinFile.Fd()), state) }
			raw = true
		}
	}

	// The copy ends on the first write after the terminal is closed.
	go func() { _, _ = io.Copy(ptmx, r.stdin) }()
	return restore, raw
}

func failure(parent, runCtx context.Context, commandLine string, waitErr error) error {
	if waitErr == nil || errors.Is(waitErr, exec.ErrWaitDelay) {
		return nil
	}

	if err := parent.Err(); err != nil {
		return &SubprocessFailedError{
			CommandLine: commandLine,
			ExitCode:    types.ExitInterrupted,
			Interrupted: true,
			Err:         err,
		}
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return &SubprocessFailedError{
			CommandLine: commandLine,
			ExitCode:    types.ExitTimedOut,
			TimedOut:    true,
			Err:         context.DeadlineExceeded,
		}
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return &SubprocessFailedError{
			CommandLine: commandLine,
			ExitCode:    types.ExitCode(exitErr.ExitCode()).Normalize(),
		}
	}
	return &SubprocessFailedError{CommandLine: commandLine, ExitCode: types.ExitFailure, Err: waitErr}
}

func startFailure(commandLine string, err error) error {
	code := types.ExitFailure
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		code = types.ExitNotFound
	}
	return &SubprocessFailedError{CommandLine: commandLine, ExitCode: code, Err: err}
}
