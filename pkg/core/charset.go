package core

// Built-in character sets.
const (
	Consonants    = "bcdfghjklmnpqrstvwxyz"
	Vowels        = "aeiou"
	VowelsAccents = "aeiouàèìòùáéíóúäëïöü"
)

// Chars splits s into one dictionary entry per rune.
// Use pkg/dict when entries may be multi-rune grapheme clusters.
func Chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
