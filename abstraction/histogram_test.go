package abstraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertables/poker"
)

func TestHistogramNorm(t *testing.T) {
	t.Parallel()

	h := NewHistogram(4)
	h.Put(0, 1)
	h.Put(2, 2)
	h.Put(2, 1)
	assert.InDelta(t, 4.0, h.Sum(), 1e-9)

	n := h.Norm()
	require.Len(t, n, 4)
	assert.InDelta(t, 0.25, n[0], 1e-6)
	assert.InDelta(t, 0.75, n[2], 1e-6)
	assert.InDelta(t, 1.0, n.Sum(), 1e-6)

	// Norm copies.
	assert.InDelta(t, 3.0, h[2], 1e-9)
}

func TestHistogramNormEmpty(t *testing.T) {
	t.Parallel()

	n := NewHistogram(3).Norm()
	assert.Equal(t, Histogram{0, 0, 0}, n)
}

func TestBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		strength int
		want     int
	}{
		{"zero", 0, 0},
		{"first boundary", 45, 0},
		{"second bucket", 46, 1},
		{"middle", 1081, 23},
		{"top", 2161, 46},
		{"above range clamps", 5000, 46},
		{"negative clamps", -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bucket(tt.strength, 2162, DefaultBuckets))
		})
	}
}

func TestMaxStrength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2162, MaxStrength(poker.StandardDeck()))

	deck, err := poker.ShortDeck(6)
	require.NoError(t, err)
	assert.Equal(t, 19*18, MaxStrength(deck))
}
