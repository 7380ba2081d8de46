package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		hand string
		want HandType
	}{
		{"royal flush", "AsKsQsJsTs2c3d", StraightFlush},
		{"wheel straight flush", "As2s3s4s5sKdQc", StraightFlush},
		{"quads", "AsAhAdAcKs2c3d", FourOfAKind},
		{"full house", "KsKhKdQcQs2c3d", FullHouse},
		{"two trips", "KsKhKd2c2s2dAh", FullHouse},
		{"flush", "As9s7s5s2sKdQc", Flush},
		{"wheel", "As2d3c4h5sKdQc", Straight},
		{"trips", "7s7h7d2c9sJdKc", ThreeOfAKind},
		{"two pair", "7s7h9d9c2sJdKc", TwoPair},
		{"three pairs", "7s7h9d9c2s2dKc", TwoPair},
		{"pair", "7s7h9d3c2sJdKc", Pair},
		{"high card", "As9h7d5c2sJdQc", HighCard},
	}

	eval := NewEvaluator()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rank := eval.Evaluate(MustParseHand(tc.hand))
			assert.Equal(t, tc.want, rank.Type(), "hand %s evaluated as %s", tc.hand, rank)
		})
	}
}

func TestEvaluateOrdering(t *testing.T) {
	t.Parallel()
	eval := NewEvaluator()

	// Each hand beats the next one.
	ladder := []string{
		"AsKsQsJsTs",
		"6h5h4h3h2h",
		"AsAhAdAcKs",
		"AsAhAdAc2s",
		"AsAhAdKcKs",
		"KsKhKdAcAs",
		"AsJs9s7s5s",
		"AsTs9s7s5s",
		"AsKdQhJcTs",
		"5s4d3h2cAs",
		"QsQhQd5c4s",
		"QsQhQd5c3s",
		"KsKhQdQc2s",
		"KsKhJdJcAs",
		"KsKhJdJcQs",
		"2s2hAdKcQs",
		"2s2hAdKcJs",
		"AsKhQd9c8s",
		"AsKhQd9c7s",
		"7s5h4d3c2s",
	}
	for i := 0; i+1 < len(ladder); i++ {
		a := eval.Evaluate(MustParseHand(ladder[i]))
		b := eval.Evaluate(MustParseHand(ladder[i+1]))
		assert.Less(t, a, b, "%s (%s) should beat %s (%s)", ladder[i], a, ladder[i+1], b)
	}

	// Both hands play the board's straight.
	split1 := eval.Evaluate(MustParseHand("8c9dTsJhQc", "2d3h"))
	split2 := eval.Evaluate(MustParseHand("8c9dTsJhQc", "2s4c"))
	assert.Equal(t, split1, split2)
	assert.Less(t, split1, WorstHandRank)
}

func TestEvaluateFiveCardDistribution(t *testing.T) {
	t.Parallel()
	eval := NewEvaluator()
	cards := StandardDeck().Cards()

	var counts [StraightFlush + 1]int
	distinct := make(map[HandRank]struct{})
	for a := 0; a < len(cards); a++ {
		for b := a + 1; b < len(cards); b++ {
			for c := b + 1; c < len(cards); c++ {
				for d := c + 1; d < len(cards); d++ {
					for e := d + 1; e < len(cards); e++ {
						rank := eval.Evaluate(NewHand(cards[a], cards[b], cards[c], cards[d], cards[e]))
						require.Less(t, rank, WorstHandRank)
						counts[rank.Type()]++
						distinct[rank] = struct{}{}
					}
				}
			}
		}
	}

	assert.Equal(t, [StraightFlush + 1]int{
		HighCard:      1302540,
		Pair:          1098240,
		TwoPair:       123552,
		ThreeOfAKind:  54912,
		Straight:      10200,
		Flush:         5108,
		FullHouse:     3744,
		FourOfAKind:   624,
		StraightFlush: 40,
	}, counts)
	assert.Len(t, distinct, 7462)
}

func TestEvaluateUsesBestFive(t *testing.T) {
	t.Parallel()
	eval := NewEvaluator()
	rng := rand.New(rand.NewSource(11))

	for range 2000 {
		hand := NewShoe(StandardDeck(), rng).Deal(7)
		cards := hand.Cards()

		best := WorstHandRank
		for skip1 := 0; skip1 < 7; skip1++ {
			for skip2 := skip1 + 1; skip2 < 7; skip2++ {
				five := hand &^ Hand(cards[skip1]) &^ Hand(cards[skip2])
				best = min(best, eval.Evaluate(five))
			}
		}
		require.Equal(t, best, eval.Evaluate(hand), "hand %s", hand)
	}
}
