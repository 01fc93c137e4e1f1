package config

import (
	"github.com/leapstack-labs/incantata/pkg/core"
	"github.com/leapstack-labs/incantata/pkg/dict"
)

// Default structure values, matching the command line defaults of the
// original incantata binary.
const (
	DefaultOnset        = 1
	DefaultNucleus      = 1
	DefaultCoda         = 0
	DefaultMinLen       = 4
	DefaultSuggestedLen = 15
	DefaultOnsetDict    = dict.PresetConsonants
	DefaultNucleusDict  = dict.PresetVowels
	DefaultCodaDict     = dict.PresetConsonants
)

// DefaultStructure returns the structure used when nothing is configured.
func DefaultStructure() StructureConfig {
	return StructureConfig{
		Onset:           DefaultOnset,
		OnsetDict:       dict.Resolve(DefaultOnsetDict),
		OnsetContinue:   core.DefaultContinue,
		Nucleus:         DefaultNucleus,
		NucleusDict:     dict.Resolve(DefaultNucleusDict),
		NucleusContinue: core.DefaultContinue,
		Coda:            DefaultCoda,
		CodaDict:        dict.Resolve(DefaultCodaDict),
		CodaContinue:    core.DefaultContinue,
		MinLen:          DefaultMinLen,
		SuggestedLen:    DefaultSuggestedLen,
	}
}

// StructureDefaults returns the default structure as flat koanf keys
// under prefix, e.g. "structure.onset". Dictionaries are given by preset
// name and resolved during decoding.
func StructureDefaults(prefix string) map[string]any {
	return map[string]any{
		prefix + ".onset":            DefaultOnset,
		prefix + ".onset_dict":       DefaultOnsetDict,
		prefix + ".onset_continue":   core.DefaultContinue,
		prefix + ".nucleus":          DefaultNucleus,
		prefix + ".nucleus_dict":     DefaultNucleusDict,
		prefix + ".nucleus_continue": core.DefaultContinue,
		prefix + ".coda":             DefaultCoda,
		prefix + ".coda_dict":        DefaultCodaDict,
		prefix + ".coda_continue":    core.DefaultContinue,
		prefix + ".min_len":          DefaultMinLen,
		prefix + ".suggested_len":    DefaultSuggestedLen,
	}
}
