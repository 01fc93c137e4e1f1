package core

import "errors"

// Validate checks that the structure can generate words.
// It returns the first problem found as a *ConfigError, or nil.
//
// Checks run in this order: negative segment lengths, all segments empty,
// empty dictionaries (onset, nucleus, coda), continuation probabilities,
// and finally the word length range.
func (s *Structure) Validate() error {
	problems := s.problems(true)
	if len(problems) == 0 {
		return nil
	}
	return problems[0]
}

// ValidateAll checks the structure and returns every problem found,
// joined with errors.Join. Each joined error is a *ConfigError.
func (s *Structure) ValidateAll() error {
	problems := s.problems(false)
	if len(problems) == 0 {
		return nil
	}
	errs := make([]error, len(problems))
	for i, p := range problems {
		errs[i] = p
	}
	return errors.Join(errs...)
}

// Validate is the function form of Structure.Validate. A nil structure
// is reported as having no segments.
func Validate(s *Structure) error {
	if s == nil {
		return newConfigError(KindAllSegmentsZero, "structure is nil")
	}
	return s.Validate()
}

func (s *Structure) problems(firstOnly bool) []*ConfigError {
	var out []*ConfigError
	add := func(e *ConfigError) bool {
		out = append(out, e)
		return firstOnly
	}

	for _, kind := range SegmentKinds {
		if seg := s.Segment(kind); seg.Len < 0 {
			if add(newSegmentError(KindNegativeLength, kind, "length %d is negative", seg.Len)) {
				return out
			}
		}
	}

	if !s.Onset.Active() && !s.Nucleus.Active() && !s.Coda.Active() {
		if add(newConfigError(KindAllSegmentsZero, "onset, nucleus and coda lengths are all zero")) {
			return out
		}
	}

	for _, kind := range SegmentKinds {
		seg := s.Segment(kind)
		if seg.Active() && len(seg.Dict) == 0 {
			if add(newSegmentError(KindEmptyDictionary, kind, "length is %d but the dictionary is empty", seg.Len)) {
				return out
			}
		}
	}

	probsOK := true
	for _, kind := range SegmentKinds {
		seg := s.Segment(kind)
		if seg.Continue != NeverContinue && (seg.Continue < 0 || seg.Continue > 1) {
			probsOK = false
			if add(newSegmentError(KindInvalidProbability, kind, "continuation probability %g is outside [0, 1]", seg.Continue)) {
				return out
			}
		}
	}

	// A segment only ever emits if its first draw can succeed. The nucleus
	// always emits its first character.
	if probsOK && (s.Onset.Active() || s.Nucleus.Active() || s.Coda.Active()) {
		canEmit := s.Nucleus.Active() ||
			(s.Onset.Active() && s.Onset.Probability() > 0) ||
			(s.Coda.Active() && s.Coda.Probability() > 0)
		if !canEmit {
			if add(newConfigError(KindAllSegmentsZero, "no segment can emit a character: nucleus is empty and onset/coda never continue")) {
				return out
			}
		}
	}

	if s.MinLen < 0 {
		if add(newConfigError(KindInvalidLengthRange, "min_len %d is negative", s.MinLen)) {
			return out
		}
	} else if s.MinLen >= s.SuggestedLen {
		add(newConfigError(KindInvalidLengthRange, "min_len %d must be less than suggested_len %d", s.MinLen, s.SuggestedLen))
	}

	return out
}
