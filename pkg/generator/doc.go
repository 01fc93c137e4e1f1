// Package generator builds pronounceable pseudo-words from a core.Structure.
//
// A syllable is produced by a small finite-state machine that walks the
// onset, nucleus and coda segments in order. Each state carries a counter of
// characters already emitted in its segment; Step evaluates one transition
// and reports whether a character should be emitted. While a segment is
// below its length it continues with the segment's continuation probability
// (0.7 when unset). The first nucleus character is always emitted, so every
// syllable of a structure with a nucleus contains at least one nucleus
// character.
//
// A word is built by picking a target length uniformly from
// [MinLen, SuggestedLen) and appending whole syllables until the word is at
// least that long. Words can therefore be longer than SuggestedLen.
//
// Length is counted in dictionary entries: an entry such as "à" or "th"
// counts as one character regardless of its encoding.
//
// All randomness comes from the random.Source passed to each call, so the
// same Source state always yields the same word.
//
// # Errors
//
// Syllable and Word return the *core.ConfigError from core.Validate when the
// structure is invalid. The only other failure is ErrStalled. A valid
// structure without a nucleus emits only through onset and coda draws, and
// Word gives up with ErrStalled after 10000 consecutive empty syllables.
// With real randomness this needs continuation probabilities so close to 0
// that the structure is unusable anyway; a scripted Source that keeps
// refusing to continue reaches it quickly. ErrStalled is not a ConfigError.
package generator
