// Package config provides the shared, declarative form of a word structure.
// This package is decoupled from CLI concerns: it knows how a structure is
// written in incantata.yaml and how to turn it into a core.Structure.
package config

import (
	"reflect"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/incantata/pkg/core"
	"github.com/leapstack-labs/incantata/pkg/dict"
)

// Dictionary holds the entries of one segment dictionary.
// In a config file it is written as a preset name ("vowels"), a string of
// characters ("aeiou") or a list of entries (["th", "sh"]).
type Dictionary []string

// MarshalYAML writes the most compact form that reads back to the same
// entries: a preset name, a plain string, or a list. A string that would
// read back as a preset name is written as a list.
func (d Dictionary) MarshalYAML() (any, error) {
	for _, p := range dict.List() {
		if slices.Equal(p.Entries(), d) {
			return p.Name, nil
		}
	}
	joined := strings.Join(d, "")
	if _, isPreset := dict.Get(joined); isPreset {
		return []string(d), nil
	}
	if slices.Equal(dict.Parse(joined), []string(d)) {
		return joined, nil
	}
	return []string(d), nil
}

// DictionaryHook decodes a string into a Dictionary by resolving it as a
// preset name or splitting it into characters.
func DictionaryHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(Dictionary{})
	return func(from, to reflect.Type, data any) (any, error) {
		if to != target || from.Kind() != reflect.String {
			return data, nil
		}
		return Dictionary(dict.Resolve(reflect.ValueOf(data).String())), nil
	}
}

// StructureConfig is the config file form of a core.Structure.
type StructureConfig struct {
	Onset         int        `koanf:"onset" yaml:"onset"`
	OnsetDict     Dictionary `koanf:"onset_dict" yaml:"onset_dict"`
	OnsetContinue float64    `koanf:"onset_continue" yaml:"onset_continue"`

	Nucleus         int        `koanf:"nucleus" yaml:"nucleus"`
	NucleusDict     Dictionary `koanf:"nucleus_dict" yaml:"nucleus_dict"`
	NucleusContinue float64    `koanf:"nucleus_continue" yaml:"nucleus_continue"`

	Coda         int        `koanf:"coda" yaml:"coda"`
	CodaDict     Dictionary `koanf:"coda_dict" yaml:"coda_dict"`
	CodaContinue float64    `koanf:"coda_continue" yaml:"coda_continue"`

	MinLen       int `koanf:"min_len" yaml:"min_len"`
	SuggestedLen int `koanf:"suggested_len" yaml:"suggested_len"`
}

// Build converts the config into a core.Structure. The result is not
// validated; call core.Validate on it.
func (c *StructureConfig) Build() *core.Structure {
	return &core.Structure{
		Onset:        core.Segment{Len: c.Onset, Dict: slices.Clone([]string(c.OnsetDict)), Continue: segmentContinue(c.OnsetContinue)},
		Nucleus:      core.Segment{Len: c.Nucleus, Dict: slices.Clone([]string(c.NucleusDict)), Continue: segmentContinue(c.NucleusContinue)},
		Coda:         core.Segment{Len: c.Coda, Dict: slices.Clone([]string(c.CodaDict)), Continue: segmentContinue(c.CodaContinue)},
		MinLen:       c.MinLen,
		SuggestedLen: c.SuggestedLen,
	}
}

// segmentContinue maps a configured probability onto core.Segment.Continue.
// In config files 0 means the segment never continues.
func segmentContinue(p float64) float64 {
	if p == 0 {
		return core.NeverContinue
	}
	return p
}

// FromStructure is the inverse of Build.
func FromStructure(s *core.Structure) StructureConfig {
	return StructureConfig{
		Onset:           s.Onset.Len,
		OnsetDict:       slices.Clone(s.Onset.Dict),
		OnsetContinue:   s.Onset.Probability(),
		Nucleus:         s.Nucleus.Len,
		NucleusDict:     slices.Clone(s.Nucleus.Dict),
		NucleusContinue: s.Nucleus.Probability(),
		Coda:            s.Coda.Len,
		CodaDict:        slices.Clone(s.Coda.Dict),
		CodaContinue:    s.Coda.Probability(),
		MinLen:          s.MinLen,
		SuggestedLen:    s.SuggestedLen,
	}
}
