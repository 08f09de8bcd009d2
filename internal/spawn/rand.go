package spawn

import (
	"math/rand/v2"
)

// Rand is the randomness the spawner draws from. Float32 returns a value
// in [0, 1). *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float32() float32
}

type globalRand struct{}

func (globalRand) Float32() float32 { return rand.Float32() }

// Global uses the process-wide math/rand/v2 source.
var Global Rand = globalRand{}

// Seeded returns a reproducible source.
func Seeded(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sequence replays fixed values in order, wrapping around at the end.
type Sequence struct {
	Values []float32
	next   int
}

func NewSequence(values ...float32) *Sequence {
	return &Sequence{Values: values}
}

func (s *Sequence) Float32() float32 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

func inRange(r Rand, min, max float32) float32 {
	return r.Float32()*(max-min) + min
}
