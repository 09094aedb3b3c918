package engine

import (
	"math/rand"
	"sort"
)

// =============================================================================
// Deterministic RNG
// =============================================================================
//
// Two uses: HashSeed is the one-shot, stateless function for trivial rolls
// that don't need to thread through the battle. Stream is the stateful
// generator constructed once per battle from the seed and passed by
// reference into every phase handler; its draws must happen in the fixed
// order documented on each processor or replays diverge.

// HashSeed performs a single splitmix64-style mix of seed and folds the
// result into [0,1). It never advances any shared state, making it safe
// for one-off, context-free rolls that don't need replay ordering.
func HashSeed(seed uint32) float64 {
	x := uint64(seed)
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x ^= x >> 31
	return float64(x>>11) / float64(uint64(1)<<53)
}

// splitmix64Seed expands a 32-bit battle seed into a well-mixed 64-bit
// value suitable for seeding math/rand's source. This keeps the stream
// bit-identical across platforms: math/rand's generator is a pure
// software algorithm over the given Source, not the host's entropy pool.
func splitmix64Seed(seed uint32) int64 {
	x := uint64(seed) + 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z)
}

// Stream is the per-battle stateful RNG. Every stochastic decision in the
// engine draws from the same Stream instance, in the fixed order
// described by each processor's doc comment.
type Stream struct {
	r     *rand.Rand
	draws int
}

// NewStream constructs the one stream for an entire battle, seeded
// deterministically from the battle seed.
func NewStream(seed uint32) *Stream {
	return &Stream{r: rand.New(rand.NewSource(splitmix64Seed(seed)))}
}

// Float64 draws a single value in [0,1).
func (s *Stream) Float64() float64 {
	s.draws++
	return s.r.Float64()
}

// IntRange draws an integer in [lo, hi], inclusive.
func (s *Stream) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	s.draws++
	return lo + s.r.Intn(hi-lo+1)
}

// Bernoulli draws true with probability p (clamped to [0,1]).
func (s *Stream) Bernoulli(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.Float64() < p
}

// Shuffle performs an in-place Fisher-Yates shuffle of n elements using
// the supplied swap function.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
	s.draws++
}

// WeightedPick draws an index in [0, len(weights)) with probability
// proportional to each weight. Zero or negative weights are never picked;
// when no weight is positive, the pick is uniform over the slice.
func (s *Stream) WeightedPick(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return s.IntRange(0, len(weights)-1)
	}
	roll := s.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Draws returns the number of draw operations made on the stream so far
// (a Shuffle counts as one, however many values it consumes), useful for
// tests asserting draw-order discipline.
func (s *Stream) Draws() int {
	return s.draws
}

// sortedKeys is a small helper used by contagion to guarantee rolls
// happen in sorted (effect, target-instance-id) order; map-iteration
// order would desynchronize replays.
func sortedKeys[K ~string](m map[K]float64) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
