package core

// =============================================================================
// Segment
// =============================================================================

// SegmentKind identifies one of the three parts of a syllable.
type SegmentKind int

// Syllable segments, in the order they are generated.
const (
	// SegmentOnset is the leading, consonant-like part of a syllable.
	SegmentOnset SegmentKind = iota
	// SegmentNucleus is the vowel-like core of a syllable.
	SegmentNucleus
	// SegmentCoda is the trailing, consonant-like part of a syllable.
	SegmentCoda
)

// SegmentKinds lists every segment in generation order.
var SegmentKinds = []SegmentKind{SegmentOnset, SegmentNucleus, SegmentCoda}

// String returns the string representation of the segment kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentOnset:
		return "onset"
	case SegmentNucleus:
		return "nucleus"
	case SegmentCoda:
		return "coda"
	default:
		return "unknown"
	}
}

// DefaultContinue is the probability of emitting one more character in a
// segment once the segment has started.
const DefaultContinue = 0.7

// NeverContinue is the Continue value for a segment that never emits past
// its forced characters. The zero value of Continue means DefaultContinue.
const NeverContinue = -1.0

// Segment describes one part of a syllable.
type Segment struct {
	// Len is the maximum number of characters the segment may contribute.
	Len int
	// Dict is the pool characters are drawn from. Each entry counts as one
	// character regardless of its byte length. Duplicates are allowed and
	// act as weights.
	Dict []string
	// Continue is the probability of emitting another character while the
	// segment is below Len. The first nucleus character ignores it. Zero
	// selects DefaultContinue; use NeverContinue for a probability of 0.
	Continue float64
}

// Probability returns the continuation probability the generator draws
// against.
func (s Segment) Probability() float64 {
	switch s.Continue {
	case 0:
		return DefaultContinue
	case NeverContinue:
		return 0
	default:
		return s.Continue
	}
}

// Active reports whether the segment can contribute characters at all.
func (s Segment) Active() bool {
	return s.Len > 0
}

func (s Segment) clone() Segment {
	out := s
	if s.Dict != nil {
		out.Dict = append([]string(nil), s.Dict...)
	}
	return out
}

// =============================================================================
// Structure
// =============================================================================

// Structure holds the phonotactic rules of a generated language.
// A Structure is read-only once built: generation never mutates it, so a
// single value may be shared by any number of concurrent callers.
type Structure struct {
	Onset   Segment
	Nucleus Segment
	Coda    Segment

	// MinLen is the inclusive lower bound on word length in characters.
	MinLen int
	// SuggestedLen is the exclusive upper bound used to pick a target
	// length. Words may overshoot it because syllables are not split.
	SuggestedLen int
}

// Segment returns the segment of the given kind.
func (s *Structure) Segment(kind SegmentKind) *Segment {
	switch kind {
	case SegmentOnset:
		return &s.Onset
	case SegmentNucleus:
		return &s.Nucleus
	case SegmentCoda:
		return &s.Coda
	default:
		return nil
	}
}

// Clone returns a deep copy of the structure.
func (s *Structure) Clone() *Structure {
	if s == nil {
		return nil
	}
	return &Structure{
		Onset:        s.Onset.clone(),
		Nucleus:      s.Nucleus.clone(),
		Coda:         s.Coda.clone(),
		MinLen:       s.MinLen,
		SuggestedLen: s.SuggestedLen,
	}
}

// Alphabet returns the union of every active segment's dictionary,
// deduplicated, in first-seen order.
func (s *Structure) Alphabet() []string {
	seen := make(map[string]bool)
	var out []string
	for _, kind := range SegmentKinds {
		seg := s.Segment(kind)
		if !seg.Active() {
			continue
		}
		for _, c := range seg.Dict {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// Default returns a minimal consonant-vowel structure: one optional
// consonant followed by one vowel, words of four characters or more.
func Default() *Structure {
	return &Structure{
		Onset: Segment{
			Len:      1,
			Dict:     Chars(Consonants),
			Continue: DefaultContinue,
		},
		Nucleus: Segment{
			Len:      1,
			Dict:     Chars(Vowels),
			Continue: DefaultContinue,
		},
		Coda: Segment{
			Len:      0,
			Dict:     Chars(Consonants),
			Continue: DefaultContinue,
		},
		MinLen:       4,
		SuggestedLen: 5,
	}
}
