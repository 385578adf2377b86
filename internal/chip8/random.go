package chip8

import "math/rand"

// defaultRandomSource draws from the process-wide generator. No seeding or
// reproducibility is guaranteed; tests substitute their own RandomSource.
type defaultRandomSource struct{}

// NextByte returns one uniformly distributed byte.
func (defaultRandomSource) NextByte() uint8 {
	return uint8(rand.Intn(256))
}
