package quizgen

import "sync/atomic"

// Selection records whether quiz generation has switched from the primary
// generator to the deterministic assembler. The switch is one-way.
type Selection struct {
	fallback atomic.Bool
}

// NewSelection returns a Selection that starts on the primary generator.
func NewSelection() *Selection {
	return &Selection{}
}

// UsingFallback reports whether the deterministic assembler is selected.
func (s *Selection) UsingFallback() bool {
	return s.fallback.Load()
}

// MarkFallback selects the deterministic assembler for the rest of the
// process. It returns true only for the call that made the switch.
func (s *Selection) MarkFallback() bool {
	return s.fallback.CompareAndSwap(false, true)
}
