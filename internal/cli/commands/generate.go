package commands

import (
	"fmt"

	"github.com/leapstack-labs/incantata/internal/batch"
	"github.com/leapstack-labs/incantata/internal/cli/config"
	"github.com/leapstack-labs/incantata/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate words",
		Long: `Generate a batch of pronounceable words from the configured structure.

Each word is built from syllables of onset, nucleus and coda characters.
The structure comes from incantata.yaml and can be overridden with flags.`,
		Example: `  # Ten words with the default structure
  incantata generate

  # Reproducible output
  incantata generate -n 20 --seed 42

  # Longer words with a coda and accented vowels, split into syllables
  incantata generate --coda 1 --nucleus-dict vowels_accents --min-len 6 --suggested-len 10 --hyphenate

  # Keep only words accepted by a Starlark filter
  incantata generate --filter filters/no_double_vowels.star

  # JSON with syllables and the batch seed
  incantata generate -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd)
		},
	}

	cmd.Flags().IntP("count", "n", config.DefaultCount, "Number of words")
	cmd.Flags().Bool("hyphenate", false, "Separate syllables with hyphens")
	cmd.Flags().Bool("capitalize", false, "Capitalize each word")
	addBatchFlags(cmd)
	addStructureFlags(cmd)

	return cmd
}

func runGenerate(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	s, err := cmdCtx.Structure()
	if err != nil {
		return err
	}
	bcfg, err := cmdCtx.BatchConfig(s, cmdCtx.Cfg.Count)
	if err != nil {
		return err
	}

	res, err := batch.Run(cmd.Context(), bcfg)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(res)
	}
	renderWords(r, cmdCtx.Cfg, res)
	if r.EffectiveMode() == output.ModeText {
		r.Println(r.Muted(fmt.Sprintf("seed %d", res.Seed)))
	}
	return nil
}

// renderWords prints one word per line.
func renderWords(r *output.Renderer, cfg *config.Config, res *batch.Result) {
	styles := r.Styles()
	for _, w := range res.Words {
		word := r.Word(w.Syllables, cfg.Hyphenate, cfg.Capitalize)
		if r.EffectiveMode() == output.ModeText && !cfg.Hyphenate {
			word = styles.Word.Render(word)
		}
		r.Println(word)
	}
}
