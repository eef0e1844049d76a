package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/kballard/go-shellquote"
)

// Command describes an external program to run.
type Command struct {
	// Name is a short label used in errors and logs (e.g. "migration").
	Name string
	// Args is the program followed by its arguments.
	Args []string
	// Env is the full child environment. Nil inherits the current environment.
	Env []string
	// Dir is the working directory. Empty uses the current directory.
	Dir string
	// Stdout and Stderr receive the child output. Nil writes to the
	// launcher's own stdout and stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// ExitError reports a command that ran and exited unsuccessfully.
type ExitError struct {
	Name string
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code carried by err, if any.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// Split turns a command line into arguments using shell quoting rules.
// Variables are not expanded.
func Split(line string) ([]string, error) {
	args, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command line %q: %w", line, err)
	}
	return args, nil
}

// Run starts the command and waits for it to exit. SIGINT and SIGTERM received
// by the launcher while the command runs are forwarded to it, and it is sent
// SIGTERM when ctx is cancelled. A non-zero exit is returned as *ExitError.
func Run(ctx context.Context, c Command) error {
	cmd, err := build(c)
	if err != nil {
		return err
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", c.Name, err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	for {
		select {
		case sig := <-signals:
			_ = cmd.Process.Signal(sig)
		case <-ctx.Done():
			_ = cmd.Process.Signal(syscall.SIGTERM)
			ctx = context.Background()
		case err := <-done:
			return exitError(c.Name, err)
		}
	}
}

// Output runs the command and returns its stdout. Stderr passes through unless
// the command sets it.
func Output(ctx context.Context, c Command) ([]byte, error) {
	var stdout bytes.Buffer
	c.Stdout = &stdout
	if err := Run(ctx, c); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

// Exec replaces the current process with the command. It only returns on
// failure.
func Exec(c Command) error {
	if len(c.Args) == 0 {
		return fmt.Errorf("%s: empty command", c.Name)
	}
	path, err := exec.LookPath(c.Args[0])
	if err != nil {
		return fmt.Errorf("failed to locate %s: %w", c.Name, err)
	}
	env := c.Env
	if env == nil {
		env = os.Environ()
	}
	if c.Dir != "" {
		if err := os.Chdir(c.Dir); err != nil {
			return fmt.Errorf("failed to enter %s: %w", c.Dir, err)
		}
	}
	if err := syscall.Exec(path, c.Args, env); err != nil {
		return fmt.Errorf("failed to exec %s: %w", path, err)
	}
	return nil
}

func build(c Command) (*exec.Cmd, error) {
	if len(c.Args) == 0 {
		return nil, fmt.Errorf("%s: empty command", c.Name)
	}
	cmd := exec.Command(c.Args[0], c.Args[1:]...)
	cmd.Env = c.Env
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	cmd.Stdin = os.Stdin
	return cmd, nil
}

func exitError(name string, err error) error {
	if err == nil {
		return nil
	}
	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	code := ee.ExitCode()
	if status, ok := ee.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		code = 128 + int(status.Signal())
	}
	return &ExitError{Name: name, Code: code, Err: err}
}
