// Package random provides the uniform [0,1) sources the game engine draws
// from. Production play uses dice rolls; tests use seeded or scripted sources.
package random

import (
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Source yields uniform floats in [0,1).
type Source interface {
	Float64() float64
}

// Intn returns floor(src.Float64() * n), a uniform integer in [0,n).
func Intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(src.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Chance reports whether a draw falls under p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// diceResolution is the die size used to build a float from one roll.
const diceResolution = 1_000_000

// DiceSource derives floats from an rpg-toolkit dice roller.
type DiceSource struct {
	roller dice.Roller
}

// NewDiceSource wraps a roller. A nil roller uses dice.DefaultRoller.
func NewDiceSource(roller dice.Roller) *DiceSource {
	if roller == nil {
		roller = dice.DefaultRoller
	}
	return &DiceSource{roller: roller}
}

// Float64 rolls a d1000000 and maps it onto [0,1). A failed roll yields 0.
func (s *DiceSource) Float64() float64 {
	n, err := s.roller.Roll(diceResolution)
	if err != nil || n < 1 {
		return 0
	}
	return float64(n-1) / diceResolution
}

// Seeded is a deterministic PCG source, safe for concurrent use.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a source that repeats for the same seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 implements Source.
func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Sequence replays scripted values in order and then repeats the last one.
// An empty sequence always yields 0.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequence scripts the given draws.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 implements Source.
func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	if s.next >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.next]
	s.next++
	return v
}

// Drawn returns how many scripted values were consumed.
func (s *Sequence) Drawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Fixed always returns the same value.
type Fixed float64

// Float64 implements Source.
func (f Fixed) Float64() float64 { return float64(f) }
