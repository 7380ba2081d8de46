package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoleClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hole     string
		expected string
	}{
		{"Pocket Aces", "AsAh", "AA"},
		{"Pocket Deuces", "2c2d", "22"},
		{"Ace King suited", "AsKs", "AKs"},
		{"Ace King offsuit", "KhAc", "AKo"},
		{"low card first", "2hTh", "T2s"},
		{"Seven Deuce offsuit", "7d2c", "72o"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HoleClass(MustParseHand(tt.hole))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHoleClassRejectsWrongSize(t *testing.T) {
	t.Parallel()

	_, err := HoleClass(MustParseHand("AsKsQs"))
	assert.Error(t, err)
	_, err = HoleClass(0)
	assert.Error(t, err)
}

func TestHoleClassCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 169, HoleClassCount(StandardDeck()))

	// Every raw pair of a short deck names one of the counted classes.
	deck, err := ShortDeck(6)
	require.NoError(t, err)
	seen := map[string]bool{}
	cards := deck.Cards()
	for i, a := range cards {
		for _, b := range cards[i+1:] {
			name, err := HoleClass(NewHand(a, b))
			require.NoError(t, err)
			seen[name] = true
		}
	}
	assert.Len(t, seen, HoleClassCount(deck))
}
