package random

// Sequence replays a fixed script of draws. It is useful for pinning the
// exact output of the generator in tests and examples.
//
// IntN returns the next scripted integer modulo n; Bool returns the next
// scripted boolean and ignores p. Both scripts wrap around when exhausted.
// An empty script yields 0 and false.
type Sequence struct {
	Ints  []int
	Bools []bool

	nextInt  int
	nextBool int
}

// IntN implements Source.
func (s *Sequence) IntN(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[s.nextInt%len(s.Ints)]
	s.nextInt++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Bool implements Source.
func (s *Sequence) Bool(_ float64) bool {
	if len(s.Bools) == 0 {
		return false
	}
	v := s.Bools[s.nextBool%len(s.Bools)]
	s.nextBool++
	return v
}

// Draws returns how many integers and booleans have been consumed.
func (s *Sequence) Draws() (ints, bools int) {
	return s.nextInt, s.nextBool
}
