package dict

import (
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/incantata/pkg/core"
)

// Preset is a named, reusable dictionary.
type Preset struct {
	Name        string
	Description string
	entries     []string
}

// Entries returns a copy of the preset's dictionary.
func (p Preset) Entries() []string {
	return append([]string(nil), p.entries...)
}

// Size returns the number of entries, counting repeats.
func (p Preset) Size() int {
	return len(p.entries)
}

// Distinct returns the number of distinct entries.
func (p Preset) Distinct() int {
	return len(Unique(p.entries))
}

// Preset registry
var (
	presetsMu sync.RWMutex
	presets   = make(map[string]Preset)
)

// Built-in preset names.
const (
	PresetConsonants     = "consonants"
	PresetVowels         = "vowels"
	PresetVowelsAccents  = "vowels_accents"
	PresetVowelsWeighted = "vowels_weighted"
)

func init() {
	Register(PresetConsonants, "Latin consonants", Parse(core.Consonants))
	Register(PresetVowels, "Latin vowels", Parse(core.Vowels))
	Register(PresetVowelsAccents, "Vowels with grave, acute and diaeresis accents", Parse(core.VowelsAccents))
	Register(PresetVowelsWeighted, "Plain vowels five times as likely as accented ones",
		Concat(Repeat(Parse(core.Vowels), 5), Parse(core.VowelsAccents)))
}

// Register adds or replaces a preset. Names are case-insensitive.
func Register(name, description string, entries []string) {
	presetsMu.Lock()
	defer presetsMu.Unlock()
	key := strings.ToLower(name)
	presets[key] = Preset{
		Name:        key,
		Description: description,
		entries:     append([]string(nil), entries...),
	}
}

// Get returns a preset by name.
func Get(name string) (Preset, bool) {
	presetsMu.RLock()
	defer presetsMu.RUnlock()
	p, ok := presets[strings.ToLower(name)]
	return p, ok
}

// List returns all registered presets sorted by name.
func List() []Preset {
	presetsMu.RLock()
	defer presetsMu.RUnlock()
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns all registered preset names (sorted).
func Names() []string {
	list := List()
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name
	}
	return names
}
