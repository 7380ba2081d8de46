package abstraction

import "github.com/lox/pokertables/poker"

// DefaultBuckets is the number of strength buckets used by the solver.
const DefaultBuckets = 47

// Histogram is a fixed-size distribution over discrete buckets.
type Histogram []float32

// NewHistogram returns an empty histogram with n buckets.
func NewHistogram(n int) Histogram {
	return make(Histogram, n)
}

// Put adds weight to bucket.
func (h Histogram) Put(bucket int, weight float32) {
	h[bucket] += weight
}

// Sum returns the total weight.
func (h Histogram) Sum() float64 {
	var sum float64
	for _, w := range h {
		sum += float64(w)
	}
	return sum
}

// Norm returns a copy scaled to sum to one. An empty histogram stays zero.
func (h Histogram) Norm() Histogram {
	out := NewHistogram(len(h))
	sum := h.Sum()
	if sum == 0 {
		return out
	}
	for i, w := range h {
		out[i] = float32(float64(w) / sum)
	}
	return out
}

// MaxStrength is the exclusive upper bound of strength values on deck: two
// credits for each opponent holding once the board is dealt.
func MaxStrength(deck poker.Deck) int {
	rest := deck.Size() - 5
	return rest * (rest - 1)
}

// Bucket maps a strength to one of buckets equal-width buckets.
func Bucket(strength, maxStrength, buckets int) int {
	bucket := strength * buckets / maxStrength
	if bucket >= buckets {
		bucket = buckets - 1
	}
	if bucket < 0 {
		bucket = 0
	}
	return bucket
}
