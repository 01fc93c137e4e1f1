package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/incantata/internal/cli/config"
	"github.com/leapstack-labs/incantata/internal/cli/output"
	"github.com/leapstack-labs/incantata/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) testutil.Result {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	return testutil.Execute(t, NewRootCmd(), "", args...)
}

func TestRoot_Help(t *testing.T) {
	res := run(t, "--help")
	require.NoError(t, res.Err)
	for _, name := range []string{"generate", "repl", "presets", "validate", "stats", "init", "completion", "version"} {
		assert.Contains(t, res.Stdout, name)
	}
}

func TestRoot_Version(t *testing.T) {
	res := run(t, "version")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "incantata v"+Version)

	res = run(t, "--version")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, Version)
}

func TestRoot_Generate(t *testing.T) {
	t.Chdir(t.TempDir())

	res := run(t, "generate", "-n", "4", "--seed", "1")
	require.NoError(t, res.Err)
	assert.Len(t, testutil.Lines(res.Stdout), 4)
	assert.Empty(t, res.Stderr)
}

func TestRoot_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INCANTATA_COUNT", "3")
	t.Setenv("INCANTATA_STRUCTURE__NUCLEUS_DICT", "o")
	t.Setenv("INCANTATA_STRUCTURE__ONSET", "0")

	res := run(t, "gen", "--seed", "1")
	require.NoError(t, res.Err)
	words := testutil.Lines(res.Stdout)
	require.Len(t, words, 3)
	for _, w := range words {
		assert.Regexp(t, `^o+$`, w)
	}
}

func TestRoot_VerboseLogsConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "incantata.yaml"), []byte("count: 2\n"), 0o600))
	t.Chdir(dir)

	res := run(t, "generate", "--verbose", "--seed", "1")
	require.NoError(t, res.Err)
	assert.Len(t, testutil.Lines(res.Stdout), 2)
	assert.Contains(t, res.Stderr, "using config file")
	assert.Contains(t, res.Stderr, "batch finished")
}

func TestRoot_InvalidOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	res := run(t, "generate", "-o", "yaml")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "invalid output format")
}

func TestRoot_Completion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			res := run(t, "completion", shell)
			require.NoError(t, res.Err)
			assert.Contains(t, res.Stdout, "incantata")
		})
	}

	res := run(t, "completion", "tcsh")
	assert.Error(t, res.Err)
}

func TestCompleteProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := "profiles:\n  short:\n    count: 1\n  long:\n    count: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "incantata.yaml"), []byte(cfg), 0o600))
	t.Chdir(dir)
	t.Cleanup(config.ResetConfig)

	names, _ := completeProfiles(NewRootCmd(), nil, "")
	assert.ElementsMatch(t, []string{"short", "long"}, names)
}

func TestContextFallbacks(t *testing.T) {
	ctx := context.Background()

	cfg := GetConfig(ctx)
	assert.Equal(t, config.DefaultCount, cfg.Count)

	r := GetRenderer(ctx)
	assert.Equal(t, output.ModeAuto, r.Mode())

	want := &config.Config{Count: 99}
	assert.Same(t, want, GetConfig(context.WithValue(ctx, configKey{}, want)))
}
