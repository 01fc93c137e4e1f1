package generator

import (
	"github.com/leapstack-labs/incantata/pkg/core"
	"github.com/leapstack-labs/incantata/pkg/random"
)

// Phase is the segment the syllable state machine is currently in.
type Phase int

// Syllable phases, visited in order.
const (
	PhaseOnset Phase = iota
	PhaseNucleus
	PhaseCoda
	PhaseDone
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseOnset:
		return "onset"
	case PhaseNucleus:
		return "nucleus"
	case PhaseCoda:
		return "coda"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Segment returns the structure segment the phase draws from.
// PhaseDone has no segment and returns false.
func (p Phase) Segment() (core.SegmentKind, bool) {
	switch p {
	case PhaseOnset:
		return core.SegmentOnset, true
	case PhaseNucleus:
		return core.SegmentNucleus, true
	case PhaseCoda:
		return core.SegmentCoda, true
	default:
		return 0, false
	}
}

// State is one configuration of the syllable state machine: the current
// phase and how many characters that phase has emitted so far.
type State struct {
	Phase Phase
	N     int
}

// Start is the initial state of every syllable.
var Start = State{Phase: PhaseOnset}

// Step evaluates a single transition from st.
//
// When emit is true the caller must append one character from the segment
// of st.Phase and continue from next, which stays in the same phase with
// N incremented. When emit is false, next is the first state of the
// following phase (or PhaseDone).
//
// Every emitting step increments N and every non-emitting step advances the
// phase, so a syllable takes at most Onset.Len+Nucleus.Len+Coda.Len+3 steps.
func Step(s *core.Structure, st State, src random.Source) (next State, emit bool) {
	switch st.Phase {
	case PhaseOnset:
		if st.N >= s.Onset.Len || !src.Bool(s.Onset.Probability()) {
			return State{Phase: PhaseNucleus}, false
		}
		return State{Phase: PhaseOnset, N: st.N + 1}, true

	case PhaseNucleus:
		if st.N >= s.Nucleus.Len {
			return State{Phase: PhaseCoda}, false
		}
		// The first nucleus character is mandatory.
		if st.N > 0 && !src.Bool(s.Nucleus.Probability()) {
			return State{Phase: PhaseCoda}, false
		}
		return State{Phase: PhaseNucleus, N: st.N + 1}, true

	case PhaseCoda:
		if st.N >= s.Coda.Len || !src.Bool(s.Coda.Probability()) {
			return State{Phase: PhaseDone}, false
		}
		return State{Phase: PhaseCoda, N: st.N + 1}, true

	default:
		return State{Phase: PhaseDone}, false
	}
}
