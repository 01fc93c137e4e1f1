package commands

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/incantata/internal/cli/output"
	starctx "github.com/leapstack-labs/incantata/internal/starlark"
	"github.com/leapstack-labs/incantata/pkg/core"
	"github.com/spf13/cobra"
)

// ValidationProblem is one problem found by the validate command.
type ValidationProblem struct {
	Kind    string `json:"kind"`
	Segment string `json:"segment,omitempty"`
	Message string `json:"message"`
}

// ValidationJSON is the JSON output of the validate command.
type ValidationJSON struct {
	Valid    bool                `json:"valid"`
	Problems []ValidationProblem `json:"errors"`
}

// ErrInvalidStructure is returned by the validate command when problems
// were found.
var ErrInvalidStructure = errors.New("structure is invalid")

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configured structure",
		Long: `Check the configured structure and report every problem at once,
instead of stopping at the first one like generate does.

A configured filter script is compiled as well. The command exits with an
error when anything is wrong.`,
		Example: `  incantata validate
  incantata validate --min-len 20 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd)
		},
	}

	cmd.Flags().String("filter", "", "Starlark filter script to compile")
	addStructureFlags(cmd)

	return cmd
}

func runValidate(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	s := cmdCtx.Cfg.BuildStructure()

	problems := structureProblems(s.ValidateAll())
	if path := cmdCtx.Cfg.Filter; path != "" {
		if _, err := starctx.Load(path, starctx.StructureInfoFrom(s), cmdCtx.Logger); err != nil {
			problems = append(problems, ValidationProblem{Kind: "filter", Message: err.Error()})
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(ValidationJSON{Valid: len(problems) == 0, Problems: problems}); err != nil {
			return err
		}
	} else {
		renderProblems(r, problems)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %d problem(s)", ErrInvalidStructure, len(problems))
	}
	return nil
}

// structureProblems flattens the result of core.Structure.ValidateAll.
func structureProblems(err error) []ValidationProblem {
	if err == nil {
		return nil
	}
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}

	out := make([]ValidationProblem, 0, len(errs))
	for _, e := range errs {
		var cfgErr *core.ConfigError
		if !errors.As(e, &cfgErr) {
			out = append(out, ValidationProblem{Kind: "unknown", Message: e.Error()})
			continue
		}
		p := ValidationProblem{Kind: cfgErr.Kind.String(), Message: cfgErr.Message}
		if cfgErr.Segment != nil {
			p.Segment = cfgErr.Segment.String()
		}
		out = append(out, p)
	}
	return out
}

func renderProblems(r *output.Renderer, problems []ValidationProblem) {
	if len(problems) == 0 {
		r.StatusLine("structure", "success", "")
		r.Success("Configuration is valid")
		return
	}
	for _, p := range problems {
		name := p.Kind
		if p.Segment != "" {
			name += " (" + p.Segment + ")"
		}
		r.StatusLine(name, "failed", p.Message)
	}
}
