// Package dict turns user-supplied character sets into generator
// dictionaries and holds the named presets.
//
// A dictionary entry is one user-perceived character (a grapheme cluster),
// so "é" written with a combining accent still counts as a single character
// when word length is measured.
package dict

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Parse splits s into grapheme clusters. Whitespace clusters are dropped so
// sets can be written as "a e i o u" or "aeiou" alike.
func Parse(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		if strings.TrimSpace(cluster) == "" {
			continue
		}
		out = append(out, cluster)
	}
	return out
}

// Len returns the number of grapheme clusters in s.
func Len(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Repeat returns entries repeated n times. Repeating an entry raises its
// share of uniform draws, which is how presets express simple weights.
func Repeat(entries []string, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, 0, len(entries)*n)
	for i := 0; i < n; i++ {
		out = append(out, entries...)
	}
	return out
}

// Concat joins several dictionaries into one.
func Concat(dicts ...[]string) []string {
	var out []string
	for _, d := range dicts {
		out = append(out, d...)
	}
	return out
}

// Unique returns entries with duplicates removed, preserving first-seen order.
func Unique(entries []string) []string {
	seen := make(map[string]bool, len(entries))
	var out []string
	for _, e := range entries {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// Resolve interprets s as a preset name if one is registered, otherwise
// as literal characters.
func Resolve(s string) []string {
	if p, ok := Get(s); ok {
		return p.Entries()
	}
	return Parse(s)
}
