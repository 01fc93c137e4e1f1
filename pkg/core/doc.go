// Package core defines the phonotactic structure that drives word generation.
//
// This package contains:
//   - The Structure value object (segment lengths, dictionaries, length bounds)
//   - Segment and SegmentKind (onset, nucleus, coda)
//   - ConfigError and its sentinel kinds
//   - The built-in character sets and a Default structure
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// The generator, dictionary and CLI packages depend on core, not the reverse.
package core
