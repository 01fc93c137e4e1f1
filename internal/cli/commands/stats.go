package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/incantata/internal/batch"
	"github.com/leapstack-labs/incantata/internal/cli/output"
	"github.com/spf13/cobra"
)

const (
	defaultSamples = 1000
	histogramWidth = 40
)

// StatsJSON is the JSON output of the stats command.
type StatsJSON struct {
	Seed         uint64 `json:"seed"`
	MinLen       int    `json:"min_len"`
	SuggestedLen int    `json:"suggested_len"`
	Rejected     int    `json:"rejected"`
	batch.Stats
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	var samples int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show word length statistics for a structure",
		Long: `Generate a sample of words and summarize their lengths.

Words are at least min_len characters long. Because syllables are never cut,
a word can reach or pass suggested_len; such words are counted as overshoot.`,
		Example: `  incantata stats
  incantata stats --samples 10000 --coda 2
  incantata stats -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, samples)
		},
	}

	cmd.Flags().IntVar(&samples, "samples", defaultSamples, "Number of words to sample")
	addBatchFlags(cmd)
	addStructureFlags(cmd)

	return cmd
}

func runStats(cmd *cobra.Command, samples int) error {
	if samples < 1 {
		return fmt.Errorf("--samples must be at least 1, got %d", samples)
	}

	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	s, err := cmdCtx.Structure()
	if err != nil {
		return err
	}
	bcfg, err := cmdCtx.BatchConfig(s, samples)
	if err != nil {
		return err
	}
	res, err := batch.Run(cmd.Context(), bcfg)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	st := batch.Summarize(s, res.Words)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(StatsJSON{
			Seed:         res.Seed,
			MinLen:       s.MinLen,
			SuggestedLen: s.SuggestedLen,
			Rejected:     res.Rejected,
			Stats:        st,
		})
	}

	r.Header(2, "Word lengths")
	r.Table([]string{"Metric", "Value"}, [][]any{
		{"samples", st.Count},
		{"min", st.Min},
		{"max", st.Max},
		{"mean", fmt.Sprintf("%.2f", st.Mean)},
		{"mean syllables", fmt.Sprintf("%.2f", st.MeanSyllables)},
		{fmt.Sprintf("overshoot (>= %d)", s.SuggestedLen), st.Overshoot},
		{"rejected", res.Rejected},
	})
	r.Println("")
	r.Header(2, "Histogram")
	renderHistogram(r, st)
	if r.EffectiveMode() == output.ModeText {
		r.Println(r.Muted(fmt.Sprintf("seed %d", res.Seed)))
	}
	return nil
}

// renderHistogram draws one bar per word length, scaled to the largest
// bucket.
func renderHistogram(r *output.Renderer, st batch.Stats) {
	peak := 0
	for _, b := range st.Histogram {
		peak = max(peak, b.Count)
	}
	rows := make([][]any, 0, len(st.Histogram))
	for _, b := range st.Histogram {
		width := 0
		if peak > 0 {
			width = max(1, b.Count*histogramWidth/peak)
		}
		rows = append(rows, []any{b.Len, b.Count, strings.Repeat("█", width)})
	}
	r.Table([]string{"Len", "Words", ""}, rows)
}
