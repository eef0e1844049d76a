package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"deploy-launcher/core/launcher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupLaunch prepares a config dir with a secrets file and points the
// launcher at shell scripts instead of real tools.
func setupLaunch(t *testing.T, secrets, migrate, server string) string {
	t.Helper()
	dir := t.TempDir()

	if secrets != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "secrets.env"), []byte(secrets), 0o600))
	}
	writeScript(t, filepath.Join(dir, "migrate.sh"), migrate)
	writeScript(t, filepath.Join(dir, "server.sh"), server)

	// Variables the launcher writes are registered for cleanup.
	for _, key := range []string{"PORT", "DB_PASSWORD", "APP_MODULE"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SECRETS_SOURCE", "dotenv")
	t.Setenv("SECRETS_PATH", filepath.Join(dir, "secrets.env"))
	t.Setenv("MIGRATION_MODE", "command")
	t.Setenv("MIGRATION_COMMAND", filepath.Join(dir, "migrate.sh"))
	t.Setenv("SERVER_COMMAND", filepath.Join(dir, "server.sh"))
	t.Setenv("SERVER_ARGS", "${BIND} ${WORKERS}")
	t.Setenv("SERVER_LOG_SINK", "passthrough")
	t.Setenv("SERVER_EXEC", "false")
	return dir
}

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
}

func runRoot(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(append(args, "--config-dir", dir))
	err := RootCmd.Execute()
	return out.String(), err
}

func TestLaunch(t *testing.T) {
	t.Run("Full Sequence", func(t *testing.T) {
		dir := setupLaunch(t,
			"DB_PASSWORD=hunter2\nPORT=9090\n",
			`test "$DB_PASSWORD" = hunter2 && touch "$(dirname "$0")/migrated"`,
			`test -f "$(dirname "$0")/migrated" && test "$1" = 0.0.0.0:9090 && test "$2" = 4 && test "$APP_MODULE" = app:app`,
		)

		_, err := runRoot(t, dir)
		assert.NoError(t, err)
	})

	t.Run("Default Port", func(t *testing.T) {
		dir := setupLaunch(t, "DB_PASSWORD=hunter2\n", "exit 0", `test "$1" = 0.0.0.0:8000 && test "$PORT" = 8000`)

		_, err := runRoot(t, dir)
		assert.NoError(t, err)
	})

	t.Run("Secrets Override Dotenv File", func(t *testing.T) {
		dir := setupLaunch(t,
			"DB_PASSWORD=from-secrets\nPORT=9090\n",
			`test "$DB_PASSWORD" = from-secrets`,
			`test "$DB_PASSWORD" = from-secrets && test "$1" = 0.0.0.0:9090 && test "$PORT" = 9090`,
		)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_PASSWORD=from-dotenv\nPORT=7000\n"), 0o600))

		_, err := runRoot(t, dir)
		assert.NoError(t, err)
	})

	t.Run("Invalid Port From Secrets", func(t *testing.T) {
		dir := setupLaunch(t, "PORT=eighty\n", `touch "$(dirname "$0")/migrated"`, `touch "$(dirname "$0")/served"`)

		_, err := runRoot(t, dir)
		require.Error(t, err)

		var stepErr *launcher.StepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, "secrets", stepErr.Step)
		assert.Contains(t, err.Error(), "invalid configuration after loading secrets")
		assert.NoFileExists(t, filepath.Join(dir, "migrated"))
		assert.NoFileExists(t, filepath.Join(dir, "served"))
	})

	t.Run("Port Out Of Range From Secrets", func(t *testing.T) {
		dir := setupLaunch(t, "PORT=70000\n", `touch "$(dirname "$0")/migrated"`, "exit 0")

		_, err := runRoot(t, dir)
		require.Error(t, err)
		assert.Equal(t, 1, launcher.ExitCode(err))
		assert.NoFileExists(t, filepath.Join(dir, "migrated"))
	})

	t.Run("Server Exit Code", func(t *testing.T) {
		dir := setupLaunch(t, "DB_PASSWORD=hunter2\n", "exit 0", "exit 3")

		_, err := runRoot(t, dir)
		require.Error(t, err)
		assert.Equal(t, 3, launcher.ExitCode(err))
	})

	t.Run("Secrets Failure Stops Everything", func(t *testing.T) {
		dir := setupLaunch(t, "", `touch "$(dirname "$0")/migrated"`, `touch "$(dirname "$0")/served"`)

		_, err := runRoot(t, dir)
		require.Error(t, err)
		assert.Equal(t, 1, launcher.ExitCode(err))
		assert.NoFileExists(t, filepath.Join(dir, "migrated"))
		assert.NoFileExists(t, filepath.Join(dir, "served"))
	})

	t.Run("Migration Failure Stops Server", func(t *testing.T) {
		dir := setupLaunch(t, "DB_PASSWORD=hunter2\n", "exit 9", `touch "$(dirname "$0")/served"`)

		_, err := runRoot(t, dir)
		require.Error(t, err)
		assert.Equal(t, 9, launcher.ExitCode(err))
		assert.NoFileExists(t, filepath.Join(dir, "served"))
	})
}

func TestMigrateCommand(t *testing.T) {
	dir := setupLaunch(t, "DB_PASSWORD=hunter2\n", `touch "$(dirname "$0")/migrated"`, `touch "$(dirname "$0")/served"`)

	_, err := runRoot(t, dir, "migrate")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "migrated"))
	assert.NoFileExists(t, filepath.Join(dir, "served"))
}

func TestSecretsCommand(t *testing.T) {
	dir := setupLaunch(t, "DB_PASSWORD=hunter2\nPORT=9090\n", "exit 0", "exit 0")

	out, err := runRoot(t, dir, "secrets")
	require.NoError(t, err)
	assert.Equal(t, "DB_PASSWORD\nPORT\n", out)
	assert.NotContains(t, out, "hunter2")
}
