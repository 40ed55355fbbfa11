package stencil

import (
	"io"
	"os"
)

// RunOptions defines the configuration for a single hook execution.
type RunOptions struct {
	stdout io.Writer
	stderr io.Writer
	tty    bool
}

// RunOption configures runtime behavior for executing a hook.
type RunOption func(*RunOptions)

// WithStdout mirrors the hook's stdout to w in addition to capturing it.
func WithStdout(w io.Writer) RunOption {
	return func(o *RunOptions) { o.stdout = w }
}

// WithStderr sends the hook's stderr to w instead of the parent's stderr.
func WithStderr(w io.Writer) RunOption {
	return func(o *RunOptions) { o.stderr = w }
}

// WithTTY enables or disables pseudo-terminal execution.
func WithTTY(enabled bool) RunOption {
	return func(o *RunOptions) { o.tty = enabled }
}

func resolveRunOptions(opts []RunOption) RunOptions {
	out := defaultRunOptions()
	for _, opt := range opts {
		opt(&out)
	}

	return out
}

func defaultRunOptions() RunOptions {
	return RunOptions{
		stdout: nil,
		stderr: os.Stderr,
		tty:    false,
	}
}
