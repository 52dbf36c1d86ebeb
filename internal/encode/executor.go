package encode

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Execute runs the prepared argument vector. When verbose, stderr is tee'd
// to os.Stderr in real time so encoder progress is visible; otherwise it is
// captured silently for error reporting.
func Execute(ctx context.Context, args []string, verbose bool) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// Runner invokes ffmpeg for the traversal. It satisfies the walker's
// Encoder interface.
type Runner struct {
	Verbose bool
}

// Encode transcodes input into output using the flag table. The encoder
// process is waited on synchronously; a non-zero exit is returned as an
// error carrying the tail of ffmpeg's stderr, for the caller to report.
func (r *Runner) Encode(ctx context.Context, input, output string, opts Options) error {
	res := Execute(ctx, Build(input, output, opts, r.Verbose), r.Verbose)
	if res.Err == nil {
		return nil
	}
	if tail := lastStderrLine(res.Stderr); tail != "" {
		return fmt.Errorf("ffmpeg: %w: %s", res.Err, tail)
	}
	return fmt.Errorf("ffmpeg: %w", res.Err)
}

// lastStderrLine returns the final non-empty line of captured stderr, which
// for ffmpeg is almost always the actual error message.
func lastStderrLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
