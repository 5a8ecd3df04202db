package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "hyperdual", cmd.Use)
	assert.Contains(t, cmd.Long, "hyperdual")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "run", "seed"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "Command %s should exist", name)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	config := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, config)
	assert.Equal(t, "c", config.Shorthand)
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	addr := serve.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "", addr.DefValue)
}

func TestSeed(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"seed", "derive1", "1", "2"}, "1 + [1, 0]ε\n2 + [0, 1]ε\n"},
		{[]string{"seed", "derive2", "2", "--eps", "1"}, "(2 + 1ε) + (1 + 0ε)ε1 + (1 + 0ε)ε2 + (0 + 0ε)ε1ε2\n"},
		{[]string{"seed", "derive2", "1", "--with", "2"}, "1 + 1ε1 + 0ε2 + 0ε1ε2\n2 + 0ε1 + 1ε2 + 0ε1ε2\n"},
		{[]string{"seed", "derive3", "2"}, "2 + 1ε1 + 0ε2 + 0ε3\n"},
		{[]string{"seed", "derive3", "2", "--format", "json"}, `{"status":"ok","data":["2 + 1ε1 + 0ε2 + 0ε3"]}` + "\n"},
	}
	for _, tt := range tests {
		out, err := execute(t, tt.args...)
		require.NoError(t, err, "%v", tt.args)
		assert.Equal(t, tt.want, out, "%v", tt.args)
	}
}

func TestSeed_PairWithArrays(t *testing.T) {
	out, err := execute(t, "seed", "derive2", "1", "2", "--with", "3,4,5")
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 5)
	assert.Equal(t, "1 + [1, 0]ε1 + [0, 0, 0]ε2 + [[0, 0, 0], [0, 0, 0]]ε1ε2", string(lines[0]))
}

func TestSeed_Errors(t *testing.T) {
	tests := []struct {
		args []string
		code int
	}{
		{[]string{"seed", "derive4", "1"}, ExitCommandError},
		{[]string{"seed", "derive1", "abc"}, ExitCommandError},
		{[]string{"seed", "derive1", "1", "2", "--eps", "1"}, ExitCommandError},
		{[]string{"seed", "derive1", "0", "0", "0", "0", "0", "0", "0", "0", "0", "0", "0"}, ExitFailure},
		{[]string{"seed", "derive3", "1", "2"}, ExitFailure},
		{[]string{"seed", "derive1", "1", "--format", "xml"}, ExitCommandError},
	}
	for _, tt := range tests {
		_, err := execute(t, tt.args...)
		require.Error(t, err, "%v", tt.args)
		assert.Equal(t, tt.code, GetExitCode(err), "%v", tt.args)
	}

	_, err := execute(t, "seed", "derive1", "0", "0", "0", "0", "0", "0", "0", "0", "0", "0", "0")
	assert.ErrorContains(t, err, "hyperdual: derive1: unsupported input array[11]")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	job := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(job, []byte(`
tool: gradient
params:
  expr: {type: mul, factors: [{type: sym, name: x}, {type: sym, name: y}]}
  vars: [x, y]
  at: [1, 2]
`), 0o644))

	out, err := execute(t, "run", job)
	require.NoError(t, err)
	assert.Equal(t, "2 + [2, 1]ε\n", out)

	out, err = execute(t, "run", "--format", "json", job)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"value":2,"gradient":[2,1]}}`, out)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte(`tool = "integrate"`), 0o644))

	out, err := execute(t, "run", bad)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error: unknown tool: integrate")

	_, err = execute(t, "run", filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "run")
	assert.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "hyperdual.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: loud\n"), 0o644))

	_, err := execute(t, "--config", cfg, "seed", "derive3", "1")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	wrapped := WrapExitError(ExitCommandError, "bad", errors.New("cause"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.Equal(t, "bad: cause", wrapped.Error())
	assert.Equal(t, "cause", errors.Unwrap(wrapped).Error())
}
