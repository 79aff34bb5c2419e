package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Process is a running ffmpeg export.
type Process struct {
	cmd    *exec.Cmd
	stderr bytes.Buffer
	done   chan struct{}
	err    error
}

// Wait blocks until the process exits and returns any error.
func (p *Process) Wait() error {
	<-p.done
	return p.err
}

// Kill terminates the process.
func (p *Process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// Stderr returns the captured stderr output, complete after Wait.
func (p *Process) Stderr() string {
	return p.stderr.String()
}

// Start launches ffmpeg with the given arguments. When progress is non-nil
// the -progress stream on stdout is parsed onto the channel, which is closed
// when the stream ends. The caller must Wait or Kill the returned Process.
func Start(ctx context.Context, args []string, progress chan<- Progress) (*Process, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	p := &Process{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	cmd.Stderr = &p.stderr

	var stdout io.ReadCloser
	if progress != nil {
		var err error
		stdout, err = cmd.StdoutPipe()
		if err != nil {
			return nil, fmt.Errorf("ffmpeg: stdout pipe: %w", err)
		}
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg: start: %w", err)
	}

	go func() {
		defer close(p.done)
		if progress != nil {
			ParseProgressOutput(stdout, progress)
			close(progress)
		}
		if err := cmd.Wait(); err != nil {
			p.err = &Error{Args: args, Stderr: p.stderr.String(), Err: err}
		}
	}()

	return p, nil
}

// run executes ffmpeg and waits for completion.
func run(ctx context.Context, args []string, progress chan<- Progress) error {
	proc, err := Start(ctx, args, progress)
	if err != nil {
		return err
	}
	return proc.Wait()
}

// Error is a failed ffmpeg invocation. The message carries only the stderr
// tail; FullStderr keeps the complete log for diagnostics.
type Error struct {
	Args   []string
	Stderr string
	Err    error
}

// Error implements error.
func (e *Error) Error() string {
	if tail := e.stderrTail(3); tail != "" {
		return fmt.Sprintf("ffmpeg: %v: %s", e.Err, tail)
	}
	return fmt.Sprintf("ffmpeg: %v", e.Err)
}

// Unwrap returns the underlying exec error.
func (e *Error) Unwrap() error {
	return e.Err
}

// FullStderr returns the complete stderr output.
func (e *Error) FullStderr() string {
	return e.Stderr
}

// Command returns the failed command line.
func (e *Error) Command() string {
	return "ffmpeg " + strings.Join(e.Args, " ")
}

// stderrTail returns the last n non-empty stderr lines, where the actual
// failure reason usually lands.
func (e *Error) stderrTail(n int) string {
	lines := strings.Split(strings.TrimSpace(e.Stderr), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
