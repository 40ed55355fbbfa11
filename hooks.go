// Package stencil generates project directories from templates, running
// optional pre and post generation hooks around the render step.
package stencil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"github.com/rs/zerolog/log"
)

// HookSet holds the resolved hook script paths and their runner commands
// for a single template.
type HookSet struct {
	PreFile    string
	PostFile   string
	PreRunner  []string
	PostRunner []string
}

// NewHookSet resolves hook paths under <templateRoot>/hooks.
func NewHookSet(templateRoot, preName, postName string) HookSet {
	hooksDir := filepath.Join(templateRoot, HooksDirName)

	return HookSet{
		PreFile:  filepath.Join(hooksDir, preName),
		PostFile: filepath.Join(hooksDir, postName),
	}
}

// Existing returns the hook files that are present on disk.
func (h HookSet) Existing() []string {
	var files []string

	for _, f := range []string{h.PreFile, h.PostFile} {
		if _, err := os.Stat(f); err == nil {
			files = append(files, f)
		}
	}

	return files
}

// ConfirmExecution asks the user whether template hooks may run.
//
// Hooks execute arbitrary commands on the user's system, so unless skip is
// set the user must approve them explicitly. Returns false without prompting
// when the template has no hooks. Declining is not an error.
func ConfirmExecution(h HookSet, skip bool, in io.Reader, out io.Writer) (bool, error) {
	existing := h.Existing()
	if len(existing) == 0 {
		return false, nil
	}

	if skip {
		return true, nil
	}

	fmt.Fprintln(out, "WARNING: This template contains the following hooks that will execute commands on your system:")
	for _, f := range existing {
		fmt.Fprintln(out, f)
	}
	fmt.Fprint(out, "Do you want to run these hooks? [y/N]: ")

	line, err := readLine(in)
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine consumes exactly one line. The same reader later feeds answer
// prompts, so reading past the newline would steal their input.
func readLine(in io.Reader) (string, error) {
	var b strings.Builder

	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			b.WriteByte(buf[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return "", err
		}
	}

	return b.String(), nil
}

// HookRunner executes hook scripts with a JSON payload on stdin.
type HookRunner struct {
	runner []string
}

// NewHookRunner constructs a runner. The runner argv, when non-empty, is the
// command the hook path is appended to (e.g. ["python3"]); when empty the
// hook file is executed directly and must be executable itself.
func NewHookRunner(runner []string) *HookRunner {
	return &HookRunner{runner: runner}
}

// Run executes the hook at hookPath and returns its captured stdout.
//
// The payload is serialized to JSON and written to the hook's stdin followed
// by a newline. A missing hook file is not an error; Run returns (nil, nil).
// A non-zero exit status wraps ErrHookFailed. Hooks that never read stdin are
// tolerated: a broken pipe while writing the payload is logged and ignored.
func (r *HookRunner) Run(ctx context.Context, hookPath string, payload Payload, opts ...RunOption) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal hook payload: %w", err)
	}

	if _, err := os.Stat(hookPath); err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("hook", hookPath).Msg("hook file not found, skipping")

			return nil, nil
		}

		return nil, fmt.Errorf("stat hook %s: %w", hookPath, err)
	}

	runOpts := resolveRunOptions(opts)

	log.Debug().Str("hook", hookPath).Strs("runner", r.runner).Msg("running hook")

	cmd := r.command(ctx, hookPath)

	if runOpts.tty {
		return runHookWithTTY(cmd, hookPath, append(data, '\n'), runOpts.stdout)
	}

	return runHook(cmd, hookPath, append(data, '\n'), runOpts)
}

func (r *HookRunner) command(ctx context.Context, hookPath string) *exec.Cmd {
	if len(r.runner) == 0 {
		return exec.CommandContext(ctx, hookPath)
	}

	args := append(append([]string{}, r.runner[1:]...), hookPath)

	return exec.CommandContext(ctx, r.runner[0], args...)
}

func runHook(cmd *exec.Cmd, hookPath string, payload []byte, runOpts RunOptions) ([]byte, error) {
	var stdout bytes.Buffer

	if runOpts.stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdout, runOpts.stdout)
	} else {
		cmd.Stdout = &stdout
	}
	cmd.Stderr = runOpts.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("open hook stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start hook %s: %w", hookPath, err)
	}

	writeHookStdin(stdin, payload, hookPath)

	if err := cmd.Wait(); err != nil {
		return stdout.Bytes(), hookExitError(hookPath, err)
	}

	return stdout.Bytes(), nil
}

func runHookWithTTY(cmd *exec.Cmd, hookPath string, payload []byte, stdoutSink io.Writer) ([]byte, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, fmt.Errorf("start pty: %w", err)
	}

	var out bytes.Buffer

	var outWriter io.Writer = &out
	if stdoutSink != nil {
		outWriter = io.MultiWriter(&out, stdoutSink)
	}

	done := make(chan struct{})

	go func() {
		_, _ = io.Copy(outWriter, ptmx)
		close(done)
	}()

	if _, err := ptmx.Write(payload); err != nil {
		log.Debug().Str("hook", hookPath).Err(err).Msg("write payload to pty")
	}

	// EOT so hooks reading until EOF terminate.
	_, _ = ptmx.Write([]byte{4})

	err = cmd.Wait()
	<-done
	_ = ptmx.Close()

	if err != nil {
		return out.Bytes(), hookExitError(hookPath, err)
	}

	return out.Bytes(), nil
}

func writeHookStdin(stdin io.WriteCloser, payload []byte, hookPath string) {
	defer func() { _ = stdin.Close() }()

	if _, err := stdin.Write(payload); err != nil {
		if errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) {
			log.Debug().Str("hook", hookPath).Msg("hook closed stdin before payload was written")

			return
		}

		log.Warn().Str("hook", hookPath).Err(err).Msg("write hook payload")
	}
}

func hookExitError(hookPath string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s: exit code %d: %w", hookPath, exitErr.ExitCode(), ErrHookFailed)
	}

	return fmt.Errorf("wait for hook %s: %w", hookPath, err)
}
