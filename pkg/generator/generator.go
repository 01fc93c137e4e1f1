package generator

import (
	"errors"
	"strings"

	"github.com/leapstack-labs/incantata/pkg/core"
	"github.com/leapstack-labs/incantata/pkg/random"
)

// maxEmptySyllables bounds how many consecutive empty syllables a word may
// see before generation gives up. Valid structures with a live Source never
// get close; a scripted Source that always refuses to continue would.
const maxEmptySyllables = 10000

// ErrStalled is returned when the Source keeps producing empty syllables.
var ErrStalled = errors.New("generation stalled: source produced no characters")

// Syllable generates one syllable. The structure is validated first.
func Syllable(s *core.Structure, src random.Source) (string, error) {
	if err := core.Validate(s); err != nil {
		return "", err
	}
	var b strings.Builder
	syllable(s, src, &b)
	return b.String(), nil
}

// Word generates one word. The structure is validated first and any
// *core.ConfigError is returned before a single draw is made.
func Word(s *core.Structure, src random.Source) (string, error) {
	if err := core.Validate(s); err != nil {
		return "", err
	}
	var b strings.Builder
	if _, err := word(s, src, &b, nil); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WordSyllables generates one word and returns its syllables in order.
// Joining them yields exactly the word Word would have produced from the
// same Source state.
func WordSyllables(s *core.Structure, src random.Source) ([]string, error) {
	if err := core.Validate(s); err != nil {
		return nil, err
	}
	var b strings.Builder
	var parts []string
	if _, err := word(s, src, &b, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// TargetLen draws a target word length uniformly from [MinLen, SuggestedLen).
// The structure must be valid.
func TargetLen(s *core.Structure, src random.Source) int {
	return s.MinLen + src.IntN(s.SuggestedLen-s.MinLen)
}

// word appends syllables to b until it holds at least a target number of
// characters and returns that count. When parts is non-nil each syllable is
// also appended to it.
func word(s *core.Structure, src random.Source, b *strings.Builder, parts *[]string) (int, error) {
	target := TargetLen(s, src)

	units := 0
	empty := 0
	for units < target {
		start := b.Len()
		n := syllable(s, src, b)
		if n == 0 {
			empty++
			if empty >= maxEmptySyllables {
				return 0, ErrStalled
			}
			continue
		}
		empty = 0
		units += n
		if parts != nil {
			*parts = append(*parts, b.String()[start:])
		}
	}
	return units, nil
}

// syllable runs the state machine once, appends the syllable to b and
// returns the number of characters appended.
func syllable(s *core.Structure, src random.Source, b *strings.Builder) int {
	units := 0
	st := Start
	for st.Phase != PhaseDone {
		next, emit := Step(s, st, src)
		if emit {
			kind, _ := st.Phase.Segment()
			dict := s.Segment(kind).Dict
			b.WriteString(dict[src.IntN(len(dict))])
			units++
		}
		st = next
	}
	return units
}
