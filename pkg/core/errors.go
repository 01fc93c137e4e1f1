package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a configuration error.
type ErrorKind int

// Configuration error kinds.
const (
	// KindAllSegmentsZero means no segment can ever produce a character.
	KindAllSegmentsZero ErrorKind = iota + 1
	// KindEmptyDictionary means a segment has a positive length but nothing to sample.
	KindEmptyDictionary
	// KindInvalidLengthRange means MinLen >= SuggestedLen, or a bound is negative.
	KindInvalidLengthRange
	// KindInvalidProbability means a continuation probability is outside [0, 1].
	KindInvalidProbability
	// KindNegativeLength means a segment length is below zero.
	KindNegativeLength
)

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrAllSegmentsZero    = errors.New("all segments are empty")
	ErrEmptyDictionary    = errors.New("empty dictionary")
	ErrInvalidLengthRange = errors.New("invalid length range")
	ErrInvalidProbability = errors.New("invalid continuation probability")
	ErrNegativeLength     = errors.New("negative segment length")
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindAllSegmentsZero:
		return "all_segments_zero"
	case KindEmptyDictionary:
		return "empty_dictionary"
	case KindInvalidLengthRange:
		return "invalid_length_range"
	case KindInvalidProbability:
		return "invalid_probability"
	case KindNegativeLength:
		return "negative_length"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindAllSegmentsZero:
		return ErrAllSegmentsZero
	case KindEmptyDictionary:
		return ErrEmptyDictionary
	case KindInvalidLengthRange:
		return ErrInvalidLengthRange
	case KindInvalidProbability:
		return ErrInvalidProbability
	case KindNegativeLength:
		return ErrNegativeLength
	default:
		return nil
	}
}

// ConfigError describes why a Structure cannot be used for generation.
// Configuration errors are deterministic: the same Structure fails the same
// way on every call.
type ConfigError struct {
	Kind ErrorKind
	// Segment is set for segment-specific kinds (EmptyDictionary,
	// InvalidProbability, NegativeLength).
	Segment *SegmentKind
	Message string
}

func (e *ConfigError) Error() string {
	if e.Segment != nil {
		return fmt.Sprintf("invalid structure: %s: %s", e.Segment, e.Message)
	}
	return fmt.Sprintf("invalid structure: %s", e.Message)
}

// Unwrap returns the sentinel matching the error kind.
func (e *ConfigError) Unwrap() error {
	return e.Kind.sentinel()
}

func newConfigError(kind ErrorKind, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func newSegmentError(kind ErrorKind, seg SegmentKind, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Segment: &seg, Message: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// KindOf returns the kind of the first ConfigError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *ConfigError
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
