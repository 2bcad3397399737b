// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runtime

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/nativebuild/nativebuild/pkg/platform"
	"github.com/nativebuild/nativebuild/pkg/types"
)

func newTestRunner(opts ...NativeRunnerOption) *NativeRunner {
	base := []NativeRunnerOption{
		WithSandbox(platform.SandboxNone),
		WithBaseEnv([]string{"PATH=" + os.Getenv("PATH")}),
		WithStdin(nil),
	}
	return NewNativeRunner(append(base, opts...)...)
}

func runLines(t *testing.T, r Runner, inv Invocation) ([]Line, error) {
	t.Helper()

	var lines []Line
	err := Run(t.Context(), r, inv, func(l Line) { lines = append(lines, l) })
	return lines, err
}

func texts(lines []Line, stream Stream) []string {
	var out []string
	for _, l := range lines {
		if l.Stream == stream {
			out = append(out, l.Text)
		}
	}
	return out
}

func TestNativeRunner_StreamsTaggedLines(t *testing.T) {
	t.Parallel()

	lines, err := runLines(t, newTestRunner(), Invocation{
		CommandLine: `sh -c 'echo one; echo two; echo oops >&2'`,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := texts(lines, StreamStdout); !slices.Equal(got, []string{"one", "two"}) {
		t.Errorf("stdout = %v", got)
	}
	if got := texts(lines, StreamStderr); !slices.Equal(got, []string{"oops"}) {
		t.Errorf("stderr = %v", got)
	}
}

func TestNativeRunner_NonZeroExit(t *testing.T) {
	t.Parallel()

	_, err := runLines(t, newTestRunner(), Invocation{CommandLine: `sh -c 'exit 7'`})

	var failed *SubprocessFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Run() error = %v, want SubprocessFailedError", err)
	}
	if failed.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", failed.ExitCode)
	}
	if failed.CommandLine != `sh -c 'exit 7'` {
		t.Errorf("CommandLine = %q", failed.CommandLine)
	}
}

func TestNativeRunner_EnvAndDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lines, err := runLines(t, newTestRunner(), Invocation{
		Dir:         dir,
		Env:         []string{"GREETING=hello", "TARGET=world"},
		CommandLine: `sh -c 'echo "$GREETING"; pwd' $TARGET`,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := texts(lines, StreamStdout)
	if len(got) != 2 || got[0] != "hello" {
		t.Fatalf("stdout = %v", got)
	}
	// Temp dirs may sit behind a symlink (macOS /var -> /private/var).
	wantDir, _ := filepath.EvalSymlinks(dir)
	gotDir, _ := filepath.EvalSymlinks(got[1])
	if gotDir != wantDir {
		t.Errorf("working directory = %q, want %q", got[1], dir)
	}
}

func TestNativeRunner_ExpandsVariablesInCommandLine(t *testing.T) {
	t.Parallel()

	lines, err := runLines(t, newTestRunner(), Invocation{
		Env:         []string{"SCRIPT=build:linux-x64"},
		CommandLine: `echo run $SCRIPT`,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := texts(lines, StreamStdout); !slices.Equal(got, []string{"run build:linux-x64"}) {
		t.Errorf("stdout = %v", got)
	}
}

func TestNativeRunner_CommandNotFound(t *testing.T) {
	t.Parallel()

	_, err := newTestRunner().Start(t.Context(), Invocation{CommandLine: "nativebuild-no-such-command --flag"})

	var failed *SubprocessFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Start() error = %v, want SubprocessFailedError", err)
	}
	if failed.ExitCode != types.ExitNotFound {
		t.Errorf("ExitCode = %d, want %d", failed.ExitCode, types.ExitNotFound)
	}
}

func TestNativeRunner_InvalidCommandLine(t *testing.T) {
	t.Parallel()

	r := newTestRunner()
	if _, err := r.Start(t.Context(), Invocation{CommandLine: "   "}); !errors.Is(err, ErrEmptyCommandLine) {
		t.Errorf("Start(blank) error = %v, want ErrEmptyCommandLine", err)
	}
	if _, err := r.Start(t.Context(), Invocation{CommandLine: `echo 'unterminated`}); err == nil {
		t.Error("Start(unterminated quote) succeeded")
	}
}

func TestNativeRunner_Timeout(t *testing.T) {
	t.Parallel()

	r := newTestRunner(WithTimeout(100 * time.Millisecond))
	_, err := runLines(t, r, Invocation{CommandLine: "sleep 5"})

	var failed *SubprocessFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Run() error = %v, want SubprocessFailedError", err)
	}
	if !failed.TimedOut || failed.ExitCode != types.ExitTimedOut {
		t.Errorf("got TimedOut=%v ExitCode=%d, want timeout with %d", failed.TimedOut, failed.ExitCode, types.ExitTimedOut)
	}
}

func TestNativeRunner_ForeverIgnoresTimeout(t *testing.T) {
	t.Parallel()

	r := newTestRunner(WithTimeout(10 * time.Millisecond))
	if _, err := runLines(t, r, Invocation{CommandLine: "sleep 0.2", Forever: true}); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestNativeRunner_Interrupted(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	execution, err := newTestRunner().Start(ctx, Invocation{CommandLine: "sleep 5", Forever: true})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()

	var failed *SubprocessFailedError
	if err := execution.Wait(); !errors.As(err, &failed) || !failed.Interrupted {
		t.Fatalf("Wait() error = %v, want interrupted SubprocessFailedError", err)
	}
	if !errors.Is(failed, context.Canceled) {
		t.Error("interruption does not wrap context.Canceled")
	}
}

func TestNativeRunner_WaitWithoutReadingLines(t *testing.T) {
	t.Parallel()

	execution, err := newTestRunner().Start(t.Context(), Invocation{
		CommandLine: `sh -c 'i=0; while [ $i -lt 500 ]; do echo line $i; i=$((i+1)); done'`,
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := execution.Wait(); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
}

func TestNativeRunner_InteractiveUsesTerminal(t *testing.T) {
	t.Parallel()

	r := newTestRunner(WithStdin(strings.NewReader("yes\n")))
	lines, err := runLines(t, r, Invocation{
		CommandLine: `sh -c 'printf "continue? "; read answer; echo "got $answer"'`,
		Interactive: true,
	})
	if err != nil {
		var failed *SubprocessFailedError
		if errors.As(err, &failed) && failed.Err != nil {
			t.Skipf("pseudo-terminal unavailable: %v", err)
		}
		t.Fatalf("Run() error = %v", err)
	}

	var output strings.Builder
	for _, l := range lines {
		if l.Stream != StreamTerminal {
			t.Errorf("line %q came from %s, want terminal", l.Text, l.Stream)
		}
		if l.Raw {
			t.Errorf("line %q marked raw although stdin is not a terminal", l.Text)
		}
		output.WriteString(l.Text)
		if !l.Partial {
			output.WriteByte('\n')
		}
	}
	if !strings.Contains(output.String(), "got yes") {
		t.Errorf("answer not echoed, output = %q", output.String())
	}
}

func TestNativeRunner_InteractiveFallsBackOnWindowsHost(t *testing.T) {
	t.Parallel()

	r := newTestRunner(WithHostOS(platform.Windows))
	lines, err := runLines(t, r, Invocation{
		CommandLine: `sh -c 'echo piped; echo warn >&2'`,
		Interactive: true,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := texts(lines, StreamStdout); !slices.Equal(got, []string{"piped"}) {
		t.Errorf("stdout = %v", got)
	}
	if got := texts(lines, StreamTerminal); len(got) != 0 {
		t.Errorf("terminal output on a host without terminals: %v", got)
	}
}
