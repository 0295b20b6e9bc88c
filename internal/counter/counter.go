// Package counter provides a lock-free 8-bit wrapping sequence used to
// disambiguate identifiers minted within the same clock tick.
package counter

import "sync/atomic"

// Sequence is an 8-bit counter that wraps from 255 back to 0.
//
// Only the low 8 bits of the underlying word are observed. Since 2^32 is a
// multiple of 256, letting the 32-bit word overflow keeps the wrap exact.
// The zero value is ready to use and starts at 0.
type Sequence struct {
	n atomic.Uint32
}

// New returns a Sequence whose first Next call returns start.
func New(start uint8) *Sequence {
	s := &Sequence{}
	s.n.Store(uint32(start))
	return s
}

// Next atomically advances the sequence and returns the value it held
// before the increment.
func (s *Sequence) Next() uint8 {
	return uint8(s.n.Add(1) - 1)
}

// Peek returns the value the next call to Next will return.
func (s *Sequence) Peek() uint8 {
	return uint8(s.n.Load())
}
