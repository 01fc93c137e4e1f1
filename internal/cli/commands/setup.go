package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/incantata/internal/batch"
	"github.com/leapstack-labs/incantata/internal/cli/config"
	"github.com/leapstack-labs/incantata/internal/cli/output"
	intconfig "github.com/leapstack-labs/incantata/internal/config"
	starctx "github.com/leapstack-labs/incantata/internal/starlark"
	"github.com/leapstack-labs/incantata/pkg/core"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Structure builds and validates the configured structure.
func (c *CommandContext) Structure() (*core.Structure, error) {
	s := c.Cfg.BuildStructure()
	if err := core.Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// BatchConfig returns a batch configuration for count words of s,
// including the configured filter, if any.
func (c *CommandContext) BatchConfig(s *core.Structure, count int) (batch.Config, error) {
	cfg := batch.Config{
		Structure:     s,
		Count:         count,
		Workers:       c.Cfg.Workers,
		Seed:          c.Cfg.Seed,
		MaxRejections: c.Cfg.MaxAttempts,
		Logger:        c.Logger,
	}
	if c.Cfg.Filter == "" {
		return cfg, nil
	}

	prog, err := starctx.Load(c.Cfg.Filter, starctx.StructureInfoFrom(s), c.Logger)
	if err != nil {
		return batch.Config{}, err
	}
	c.Logger.Debug("filter loaded", "path", prog.Name())
	cfg.NewFilter = func() (batch.Filter, error) {
		return prog.NewFilter(), nil
	}
	return cfg, nil
}

// getConfig returns the current configuration, or the defaults when no
// configuration has been loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Count:        config.DefaultCount,
		Workers:      config.DefaultWorkers,
		OutputFormat: config.DefaultOutput,
		MaxAttempts:  config.DefaultMaxAttempts,
		Structure:    intconfig.DefaultStructure(),
	}
}

// addStructureFlags registers the flags that override the structure
// section of the config. Defaults are shown for help only; unset flags
// never override the config file.
func addStructureFlags(cmd *cobra.Command) {
	d := intconfig.DefaultStructure()
	f := cmd.Flags()
	f.Int("onset", d.Onset, "Maximum onset characters per syllable")
	f.String("onset-dict", intconfig.DefaultOnsetDict, "Onset dictionary: preset name or characters")
	f.Float64("onset-continue", d.OnsetContinue, "Probability of adding another onset character")
	f.Int("nucleus", d.Nucleus, "Maximum nucleus characters per syllable")
	f.String("nucleus-dict", intconfig.DefaultNucleusDict, "Nucleus dictionary: preset name or characters")
	f.Float64("nucleus-continue", d.NucleusContinue, "Probability of adding another nucleus character")
	f.Int("coda", d.Coda, "Maximum coda characters per syllable")
	f.String("coda-dict", intconfig.DefaultCodaDict, "Coda dictionary: preset name or characters")
	f.Float64("coda-continue", d.CodaContinue, "Probability of adding another coda character")
	f.Int("min-len", d.MinLen, "Minimum word length")
	f.Int("suggested-len", d.SuggestedLen, "Upper bound (exclusive) of the target word length")

	for _, name := range []string{"onset-dict", "nucleus-dict", "coda-dict"} {
		_ = cmd.RegisterFlagCompletionFunc(name, completePresets)
	}
}

// addBatchFlags registers flags shared by commands that generate batches.
func addBatchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Uint64("seed", 0, "Random seed (0 picks a fresh one)")
	f.Int("workers", config.DefaultWorkers, "Parallel generation workers")
	f.String("filter", "", "Starlark filter script defining accept(word)")
	f.Int("max-attempts", config.DefaultMaxAttempts, "Filter rejections allowed per batch")
}

func completePresets(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return presetNames(), cobra.ShellCompDirectiveNoFileComp
}

// describeError renders a structure error for the user.
func describeError(err error) string {
	if kind := core.KindOf(err); kind != 0 {
		return fmt.Sprintf("%s (%s)", err, kind)
	}
	return err.Error()
}
