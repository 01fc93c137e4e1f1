package commands

import (
	"github.com/leapstack-labs/incantata/internal/cli/output"
	"github.com/leapstack-labs/incantata/pkg/dict"
	"github.com/spf13/cobra"
)

// PresetJSON is the JSON form of a dictionary preset.
type PresetJSON struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Size        int      `json:"size"`
	Distinct    int      `json:"distinct"`
	Entries     []string `json:"entries,omitempty"`
}

// NewPresetsCommand creates the presets command.
func NewPresetsCommand() *cobra.Command {
	var showEntries bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List dictionary presets",
		Long: `List the named dictionaries that can be used wherever a dictionary is
expected, in incantata.yaml or in the --onset-dict, --nucleus-dict and
--coda-dict flags.

Size counts repeated entries, which make an entry more likely to be drawn.`,
		Example: `  incantata presets
  incantata presets --entries -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPresets(cmd, showEntries)
		},
	}

	cmd.Flags().BoolVar(&showEntries, "entries", false, "Include the entries of each preset")
	return cmd
}

func runPresets(cmd *cobra.Command, showEntries bool) error {
	r := NewCommandContext(cmd).Renderer
	presets := dict.List()

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]PresetJSON, 0, len(presets))
		for _, p := range presets {
			pj := PresetJSON{
				Name:        p.Name,
				Description: p.Description,
				Size:        p.Size(),
				Distinct:    p.Distinct(),
			}
			if showEntries {
				pj.Entries = p.Entries()
			}
			out = append(out, pj)
		}
		return r.JSON(out)
	}

	headers := []string{"Name", "Size", "Distinct", "Description"}
	if showEntries {
		headers = append(headers, "Entries")
	}
	rows := make([][]any, 0, len(presets))
	for _, p := range presets {
		row := []any{p.Name, p.Size(), p.Distinct(), p.Description}
		if showEntries {
			row = append(row, summarizeDict(dict.Unique(p.Entries())))
		}
		rows = append(rows, row)
	}
	r.Table(headers, rows)
	return nil
}

func presetNames() []string {
	return dict.Names()
}
