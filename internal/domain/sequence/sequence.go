// Package sequence generates the quadrant sequences shown in a test round.
package sequence

import (
	"math/rand"
	"strconv"
	"strings"
)

// Quadrants is the number of distinct values a sequence step can take.
const Quadrants = 4

// Sequence is an ordered list of quadrant indices in [0, Quadrants).
// A Sequence is never modified after it has been generated.
type Sequence []int

// At returns the value at position i
func (s Sequence) At(i int) int {
	return s[i]
}

// Len returns the number of steps
func (s Sequence) Len() int {
	return len(s)
}

// String returns the comma-joined form used in result records ("1,2,0").
func (s Sequence) String() string {
	return Join(s)
}

// Join renders a list of quadrant values comma-separated.
func Join(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Generator draws sequences from an injected random source.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator using rng
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeededGenerator creates a generator with its own seeded source
func NewSeededGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

// Generate returns length independent uniform draws from {0,1,2,3}.
// Repeats are allowed. A non-positive length yields an empty sequence.
func (g *Generator) Generate(length int) Sequence {
	if length <= 0 {
		return Sequence{}
	}
	seq := make(Sequence, length)
	for i := range seq {
		seq[i] = g.rng.Intn(Quadrants)
	}
	return seq
}
