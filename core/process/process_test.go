package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var out bytes.Buffer
		err := Run(context.Background(), Command{
			Name:   "echo",
			Args:   []string{"sh", "-c", "echo hello"},
			Stdout: &out,
		})
		require.NoError(t, err)
		assert.Equal(t, "hello\n", out.String())
	})

	t.Run("ExitCodePropagates", func(t *testing.T) {
		err := Run(context.Background(), Command{
			Name: "failing",
			Args: []string{"sh", "-c", "exit 3"},
		})
		require.Error(t, err)

		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 3, exitErr.Code)
		assert.Equal(t, "failing exited with code 3", err.Error())
	})

	t.Run("KilledBySignal", func(t *testing.T) {
		err := Run(context.Background(), Command{
			Name: "killed",
			Args: []string{"sh", "-c", "kill -TERM $$"},
		})
		code, ok := ExitCode(err)
		require.True(t, ok)
		assert.Equal(t, 143, code)
	})

	t.Run("Environment", func(t *testing.T) {
		var out bytes.Buffer
		err := Run(context.Background(), Command{
			Name:   "env",
			Args:   []string{"sh", "-c", "printf %s \"$GREETING\""},
			Env:    []string{"GREETING=hi", "PATH=/usr/bin:/bin"},
			Stdout: &out,
		})
		require.NoError(t, err)
		assert.Equal(t, "hi", out.String())
	})

	t.Run("MissingBinary", func(t *testing.T) {
		err := Run(context.Background(), Command{
			Name: "ghost",
			Args: []string{"definitely-not-a-real-binary-4711"},
		})
		require.Error(t, err)
		_, ok := ExitCode(err)
		assert.False(t, ok)
		assert.Contains(t, err.Error(), "failed to start ghost")
	})

	t.Run("EmptyCommand", func(t *testing.T) {
		err := Run(context.Background(), Command{Name: "nothing"})
		assert.Error(t, err)
	})
}

func TestOutput(t *testing.T) {
	out, err := Output(context.Background(), Command{
		Name: "vars",
		Args: []string{"sh", "-c", "echo A=1; echo B=2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "A=1\nB=2\n", string(out))
}

func TestExitCode(t *testing.T) {
	code, ok := ExitCode(fmt.Errorf("wrapped: %w", &ExitError{Name: "x", Code: 7}))
	assert.True(t, ok)
	assert.Equal(t, 7, code)

	_, ok = ExitCode(errors.New("plain"))
	assert.False(t, ok)

	_, ok = ExitCode(nil)
	assert.False(t, ok)
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{name: "Whitespace", line: "  flask db   upgrade ", want: []string{"flask", "db", "upgrade"}},
		{name: "Blank", line: strings.Repeat(" ", 3), want: []string{}},
		{name: "Double Quotes", line: `sh -c "exit 0"`, want: []string{"sh", "-c", "exit 0"}},
		{name: "Single Quotes", line: `--access-logformat '%(h)s %(r)s'`, want: []string{"--access-logformat", "%(h)s %(r)s"}},
		{name: "Variables Kept", line: `--bind ${BIND} "${APP_MODULE}"`, want: []string{"--bind", "${BIND}", "${APP_MODULE}"}},
		{name: "Unbalanced Quote", line: `sh -c "exit 0`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_QuotedArguments(t *testing.T) {
	args, err := Split(`sh -c "exit 0"`)
	require.NoError(t, err)

	assert.NoError(t, Run(context.Background(), Command{Name: "quoted", Args: args}))
}
