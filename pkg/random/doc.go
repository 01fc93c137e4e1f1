// Package random provides the randomness sources consumed by the word
// generator.
//
// Generation never touches global randomness. Every call receives a Source
// explicitly, which makes output reproducible under a fixed seed and keeps
// parallel generation safe: each goroutine owns its own Source.
//
// Sources are not safe for concurrent use. Use Derive (or NewStream) to
// obtain independent streams for workers.
package random
