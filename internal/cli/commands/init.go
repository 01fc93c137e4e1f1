package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/incantata/internal/cli/config"
	"github.com/leapstack-labs/incantata/internal/cli/output"
	intconfig "github.com/leapstack-labs/incantata/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	exampleFilterPath = "filters/example.star"

	configHeader = `# incantata configuration
#
# Dictionaries are a preset name (see 'incantata presets'), a string of
# characters, or a list of entries such as ["th", "sh", "ch"].
# Every key can be overridden with INCANTATA_<KEY> environment variables,
# for example INCANTATA_STRUCTURE__MIN_LEN=6, or with command-line flags.

`

	exampleFilter = `# accept is called with every generated word. Return False to drop it.
#
# Predeclared: vowels, consonants, structure, length(s).

def accept(word):
    if length(word) > structure.suggested_len:
        return False
    for i in range(1, len(word)):
        if word[i] == word[i - 1]:
            return False
    return True
`
)

// starterConfig is the layout of the file written by init.
type starterConfig struct {
	Count     int                       `yaml:"count"`
	Output    string                    `yaml:"output"`
	Structure intconfig.StructureConfig `yaml:"structure"`
	Profiles  map[string]map[string]any `yaml:"profiles"`
}

func newStarterConfig() starterConfig {
	return starterConfig{
		Count:     config.DefaultCount,
		Output:    config.DefaultOutput,
		Structure: intconfig.DefaultStructure(),
		Profiles: map[string]map[string]any{
			"long": {
				"structure": map[string]any{
					"coda":          1,
					"min_len":       6,
					"suggested_len": 12,
				},
			},
			"filtered": {
				"filter": exampleFilterPath,
			},
		},
	}
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a starter incantata.yaml",
		Long: `Create an incantata.yaml holding the default structure, two example
profiles and an example Starlark filter in filters/example.star.

Existing files are left alone unless --force is given.`,
		Example: `  # Initialize in current directory
  incantata init

  # Initialize in a new directory
  incantata init names

  # Overwrite an existing config
  incantata init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := NewCommandContext(cmd).Renderer
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if err := os.MkdirAll(filepath.Join(dir, filepath.Dir(exampleFilterPath)), 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, intconfig.ConfigFileName)
	if !force {
		for _, p := range []string{configPath, filepath.Join(dir, intconfig.ConfigFileNameAlt)} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s already exists. Use --force to overwrite", filepath.Base(p))
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(newStarterConfig()); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	r.StatusLine(intconfig.ConfigFileName, "success", "")

	filterPath := filepath.Join(dir, exampleFilterPath)
	if _, err := os.Stat(filterPath); err == nil && !force {
		r.StatusLine(exampleFilterPath, "skipped", "already exists")
	} else {
		if err := os.WriteFile(filterPath, []byte(exampleFilter), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", filterPath, err)
		}
		r.StatusLine(exampleFilterPath, "success", "")
	}

	r.Println("")
	r.Success("incantata project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  incantata generate              Generate words")
	r.Println("  incantata generate -p long      Use the 'long' profile")
	r.Println("  incantata repl --watch          Tune the structure interactively")
	return nil
}
