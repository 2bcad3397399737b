// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"iter"
	"strings"
	"sync"
	"sync/atomic"
)

// Execution is a started subprocess.
type Execution struct {
	commandLine string
	lines       chan Line
	done        chan struct{}
	err         error
	iterated    atomic.Bool
}

func newExecution(commandLine string) *Execution {
	return &Execution{
		commandLine: commandLine,
		lines:       make(chan Line),
		done:        make(chan struct{}),
	}
}

// Replay returns an Execution that yields lines and then finishes with err.
// Runners that do not spawn processes, such as test doubles, use it.
func Replay(commandLine string, lines []Line, err error) *Execution {
	e := newExecution(commandLine)
	go func() {
		for _, line := range lines {
			e.emit(line)
		}
		e.finish(err)
	}()
	return e
}

// CommandLine returns the command line the execution was started with.
func (e *Execution) CommandLine() string { return e.commandLine }

// Lines returns the output of the command as it is produced. The sequence
// ends when the command has closed its output. It can be ranged over only
// once; later ranges yield nothing. Lines not consumed are discarded by Wait.
func (e *Execution) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		if !e.iterated.CompareAndSwap(false, true) {
			return
		}
		for line := range e.lines {
			if !yield(line) {
				return
			}
		}
	}
}

// Wait blocks until the command has exited and returns nil on a zero exit
// status or a *SubprocessFailedError otherwise.
func (e *Execution) Wait() error {
	for range e.lines {
	}
	<-e.done
	return e.err
}

func (e *Execution) emit(line Line) {
	e.lines <- line
}

// finish records the result. All writers must have been flushed.
func (e *Execution) finish(err error) {
	close(e.lines)
	e.err = err
	close(e.done)
}

// lineWriter splits written bytes into Lines. Writes may arrive in arbitrary
// chunks; a line is emitted once its terminator is seen, or immediately as a
// partial line when partial is set.
type lineWriter struct {
	mu      sync.Mutex
	stream  Stream
	partial bool
	raw     bool
	emit    func(Line)
	buf     []byte
}

func newLineWriter(stream Stream, partial bool, emit func(Line)) *lineWriter {
	return &lineWriter{stream: stream, partial: partial, emit: emit}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(Line{Stream: w.stream, Text: trimCR(w.buf[:i]), Raw: w.raw})
		w.buf = w.buf[i+1:]
	}

	if w.partial && len(w.buf) > 0 {
		w.emit(Line{Stream: w.stream, Text: string(w.buf), Partial: true, Raw: w.raw})
		w.buf = nil
	}
	return len(p), nil
}

// Flush emits a trailing unterminated line.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.emit(Line{Stream: w.stream, Text: trimCR(w.buf), Raw: w.raw})
		w.buf = nil
	}
}

func trimCR(b []byte) string {
	return strings.TrimSuffix(string(b), "\r")
}
