package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/incantata/internal/testutil"
	"github.com/leapstack-labs/incantata/pkg/core"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "incantata.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadConfig_Defaults tests loading with no config file at all.
func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Empty(t, GetConfigFileUsed())
	assert.Equal(t, DefaultCount, cfg.Count)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Zero(t, cfg.Seed)

	s := cfg.BuildStructure()
	require.NoError(t, core.Validate(s))
	assert.Equal(t, 1, s.Onset.Len)
	assert.Equal(t, 1, s.Nucleus.Len)
	assert.Equal(t, 0, s.Coda.Len)
	assert.Equal(t, 4, s.MinLen)
	assert.Equal(t, 15, s.SuggestedLen)
	assert.Equal(t, core.Chars(core.Consonants), s.Onset.Dict)
	assert.Equal(t, core.Chars(core.Vowels), s.Nucleus.Dict)
	assert.Same(t, cfg, GetCurrentConfig())
}

// TestLoadConfig_File tests values and dictionary forms from a YAML file.
func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, `count: 3
seed: 99
structure:
  onset: 2
  onset_dict: [th, sh, k]
  nucleus_dict: vowels_accents
  coda: 1
  coda_dict: "lmn"
  coda_continue: 0.25
  min_len: 2
  suggested_len: 6
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, filepath.Dir(path), cfg.ProjectRoot)
	assert.Equal(t, 3, cfg.Count)
	assert.Equal(t, uint64(99), cfg.Seed)

	s := cfg.BuildStructure()
	require.NoError(t, core.Validate(s))
	assert.Equal(t, []string{"th", "sh", "k"}, s.Onset.Dict)
	assert.Len(t, s.Nucleus.Dict, 20)
	assert.Equal(t, []string{"l", "m", "n"}, s.Coda.Dict)
	assert.InDelta(t, 0.25, s.Coda.Continue, 1e-9)
	assert.InDelta(t, core.DefaultContinue, s.Onset.Continue, 1e-9, "unset keys keep defaults")
	assert.Equal(t, 2, s.MinLen)
}

// TestLoadConfig_SearchUpward tests finding incantata.yaml in a parent directory.
func TestLoadConfig_SearchUpward(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "count: 7\n")
	sub := filepath.Join(filepath.Dir(path), "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Count)
	assert.Equal(t, filepath.Base(path), filepath.Base(GetConfigFileUsed()))
}

// TestLoadConfig_MissingExplicitFile tests that an explicit --config must exist.
func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

// TestLoadConfig_Precedence tests flags > env vars > config file.
func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, `count: 1
structure:
  min_len: 2
  nucleus_dict: "ae"
`)

	t.Run("env overrides file", func(t *testing.T) {
		ResetConfig()
		t.Setenv("INCANTATA_COUNT", "20")
		t.Setenv("INCANTATA_STRUCTURE__MIN_LEN", "3")
		t.Setenv("INCANTATA_STRUCTURE__NUCLEUS_DICT", "io")

		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.Count)
		assert.Equal(t, 3, cfg.Structure.MinLen)
		assert.Equal(t, []string{"i", "o"}, []string(cfg.Structure.NucleusDict))
	})

	t.Run("flag overrides env", func(t *testing.T) {
		ResetConfig()
		t.Setenv("INCANTATA_COUNT", "20")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.IntP("count", "n", 10, "")
		flags.Int("min-len", 4, "")
		require.NoError(t, flags.Set("count", "30"))
		require.NoError(t, flags.Set("min-len", "1"))

		cfg, err := LoadConfig(path, flags)
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.Count)
		assert.Equal(t, 1, cfg.Structure.MinLen)
	})

	t.Run("unset flag falls back to env", func(t *testing.T) {
		ResetConfig()
		t.Setenv("INCANTATA_COUNT", "20")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.IntP("count", "n", 10, "")

		cfg, err := LoadConfig(path, flags)
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.Count, "env var should be used when flag is not set")
	})
}

// TestLoadConfig_Profiles tests profile selection and precedence.
func TestLoadConfig_Profiles(t *testing.T) {
	path := writeConfig(t, `profile: soft
structure:
  coda: 0
profiles:
  soft:
    structure:
      onset_dict: "lmn"
  harsh:
    count: 4
    structure:
      coda: 2
      coda_dict: "kgx"
`)

	t.Run("profile from file", func(t *testing.T) {
		ResetConfig()
		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "soft", cfg.Profile)
		assert.Equal(t, []string{"l", "m", "n"}, []string(cfg.Structure.OnsetDict))
		assert.Len(t, cfg.Profiles, 2)
	})

	t.Run("override selects another profile", func(t *testing.T) {
		ResetConfig()
		cfg, err := LoadConfigWithProfile(path, "harsh", nil)
		require.NoError(t, err)
		assert.Equal(t, "harsh", cfg.Profile)
		assert.Equal(t, 4, cfg.Count)
		assert.Equal(t, 2, cfg.Structure.Coda)
		assert.Equal(t, []string{"k", "g", "x"}, []string(cfg.Structure.CodaDict))
		assert.Equal(t, core.Chars(core.Consonants), []string(cfg.Structure.OnsetDict))
	})

	t.Run("flags beat the profile", func(t *testing.T) {
		ResetConfig()
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.Int("coda", 0, "")
		require.NoError(t, flags.Set("coda", "1"))

		cfg, err := LoadConfigWithProfile(path, "harsh", flags)
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.Structure.Coda)
	})

	t.Run("unknown profile", func(t *testing.T) {
		ResetConfig()
		_, err := LoadConfigWithProfile(path, "elvish", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown profile "elvish"`)
		assert.Contains(t, err.Error(), "harsh")
	})
}

// TestLoadConfig_FilterPath tests resolution of the filter script path.
func TestLoadConfig_FilterPath(t *testing.T) {
	t.Setenv("FILTER_NAME", "names")
	path := writeConfig(t, "filter: filters/${FILTER_NAME}.star\n")

	ResetConfig()
	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "filters", "names.star"), cfg.Filter)

	ResetConfig()
	cwd := t.TempDir()
	t.Chdir(cwd)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("filter", "", "")
	require.NoError(t, flags.Set("filter", "mine.star"))

	cfg, err = LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "mine.star"), cfg.Filter, "flag paths are relative to the CWD")
}

// TestLoadConfig_Invalid tests rejection of bad non-structure settings.
func TestLoadConfig_Invalid(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "output: html\n")
	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

// TestConfig_Validate tests the Config.Validate method.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		errSubstr string
	}{
		{name: "valid", cfg: Config{Count: 1, OutputFormat: "json"}},
		{name: "negative count", cfg: Config{Count: -1}, errSubstr: "count"},
		{name: "negative workers", cfg: Config{Workers: -2}, errSubstr: "workers"},
		{name: "negative max attempts", cfg: Config{MaxAttempts: -1}, errSubstr: "max_attempts"},
		{name: "bad output", cfg: Config{OutputFormat: "xml"}, errSubstr: "invalid output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

// TestFlagKey tests the mapping of flag names to config keys.
func TestFlagKey(t *testing.T) {
	assert.Equal(t, "count", flagKey("count"))
	assert.Equal(t, "max_attempts", flagKey("max-attempts"))
	assert.Equal(t, "structure.onset_dict", flagKey("onset-dict"))
	assert.Equal(t, "structure.suggested_len", flagKey("suggested-len"))
}

// TestExpandEnvVars tests the expandEnvVars function.
func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR_ONE", "value_one")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single variable", input: "${TEST_VAR_ONE}", expected: "value_one"},
		{name: "variable in path", input: "/path/to/${TEST_VAR_ONE}/file", expected: "/path/to/value_one/file"},
		{name: "unset variable stays as-is", input: "${UNSET_VARIABLE}", expected: "${UNSET_VARIABLE}"},
		{name: "no variables", input: "plain string", expected: "plain string"},
		{name: "empty string", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}

// TestGetLogger tests logger retrieval from context.
func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "fallback logger")

	logger := testutil.NewTestLogger(t)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
