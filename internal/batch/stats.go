package batch

import (
	"slices"

	"github.com/leapstack-labs/incantata/pkg/core"
	"github.com/leapstack-labs/incantata/pkg/generator"
)

// Bucket is one histogram bar: how many words had a given length.
type Bucket struct {
	Len   int `json:"len"`
	Count int `json:"count"`
}

// Stats summarizes the lengths of a set of generated words.
type Stats struct {
	Count int     `json:"count"`
	Min   int     `json:"min"`
	Max   int     `json:"max"`
	Mean  float64 `json:"mean"`
	// Overshoot counts words at or above the suggested length.
	Overshoot     int      `json:"overshoot"`
	MeanSyllables float64  `json:"mean_syllables"`
	Histogram     []Bucket `json:"histogram"`
}

// Summarize computes length statistics for words generated from s.
func Summarize(s *core.Structure, words []generator.Result) Stats {
	st := Stats{Count: len(words)}
	if len(words) == 0 {
		return st
	}

	counts := make(map[int]int)
	total, syllables := 0, 0
	st.Min = words[0].Len
	for _, w := range words {
		st.Min = min(st.Min, w.Len)
		st.Max = max(st.Max, w.Len)
		total += w.Len
		syllables += len(w.Syllables)
		counts[w.Len]++
		if s != nil && w.Len >= s.SuggestedLen {
			st.Overshoot++
		}
	}
	st.Mean = float64(total) / float64(len(words))
	st.MeanSyllables = float64(syllables) / float64(len(words))

	st.Histogram = make([]Bucket, 0, len(counts))
	for n, c := range counts {
		st.Histogram = append(st.Histogram, Bucket{Len: n, Count: c})
	}
	slices.SortFunc(st.Histogram, func(a, b Bucket) int { return a.Len - b.Len })
	return st
}
