package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardDeck(t *testing.T) {
	t.Parallel()
	deck := StandardDeck()

	assert.Equal(t, 52, deck.Size())
	assert.Equal(t, 13, deck.Ranks())
	assert.Equal(t, Two, deck.LowRank())
	assert.Equal(t, 52, deck.Mask().CountCards())

	cards := deck.Cards()
	for i := 1; i < len(cards); i++ {
		require.Less(t, cards[i-1], cards[i], "cards must be ascending")
	}
}

func TestShortDeck(t *testing.T) {
	t.Parallel()
	deck, err := ShortDeck(9)
	require.NoError(t, err)

	assert.Equal(t, 36, deck.Size())
	assert.Equal(t, Six, deck.LowRank())
	assert.True(t, deck.Contains(MustParseHand("6cAs")))
	assert.False(t, deck.Contains(MustParseHand("5cAs")))

	_, err = ShortDeck(4)
	assert.Error(t, err)
	_, err = ShortDeck(14)
	assert.Error(t, err)
}

func TestShoeDealsEveryCardOnce(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	shoe := NewShoe(StandardDeck(), rng)

	first := shoe.Deal(2)
	second := shoe.Deal(3)
	require.Equal(t, 2, first.CountCards())
	require.Equal(t, 3, second.CountCards())
	assert.False(t, first.Overlaps(second), "dealt same card twice")

	rest := shoe.Deal(47)
	assert.Equal(t, 47, rest.CountCards())
	assert.Equal(t, 0, shoe.Remaining())
	assert.Equal(t, Hand(0), shoe.Deal(1), "should not deal from an empty shoe")
	assert.Equal(t, Card(0), shoe.DealOne())
	assert.Equal(t, StandardDeck().Mask(), first|second|rest)

	shoe.Shuffle()
	assert.Equal(t, 52, shoe.Remaining())
}

func TestShoeIsDeterministicForSeed(t *testing.T) {
	t.Parallel()
	a := NewShoe(StandardDeck(), rand.New(rand.NewSource(7)))
	b := NewShoe(StandardDeck(), rand.New(rand.NewSource(7)))
	for range 10 {
		assert.Equal(t, a.DealOne(), b.DealOne())
	}
}
