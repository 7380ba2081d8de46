package abstraction

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertables/poker"
)

func TestFlopHistograms(t *testing.T) {
	t.Parallel()
	b := newTestBuilder(t, 6, nil)
	s := buildStrengths(t, b)

	flop, err := b.FlopHistograms(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, b.Config().Buckets, flop.Buckets)
	require.Equal(t, b.flop.Count(1), flop.Rows())

	// Every row counts each two-card runout exactly once.
	rest := b.Deck().Size() - 5
	want := rest * (rest - 1) / 2
	for i := range flop.Rows() {
		sum := 0
		for _, n := range flop.Row(i) {
			sum += int(n)
		}
		require.Equal(t, want, sum, "row %d", i)
	}

	// A flopped royal flush beats every opponent on every runout.
	opp := b.Deck().Size() - 7
	nuts := Bucket(opp*(opp-1), b.MaxStrength(), flop.Buckets)
	row := flop.Row(b.FlopIndex(poker.MustParseHand("AsKs"), poker.MustParseHand("QsJsTs")))
	assert.Equal(t, uint16(want), row[nuts])
}

func TestTurnHistograms(t *testing.T) {
	t.Parallel()
	b := newTestBuilder(t, 6, nil)
	s := buildStrengths(t, b)

	turn, err := b.TurnHistograms(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, b.turn.Count(1), turn.Rows())

	want := b.Deck().Size() - 6
	for i := range turn.Rows() {
		sum := 0
		for _, n := range turn.Row(i) {
			sum += int(n)
		}
		require.Equal(t, want, sum, "row %d", i)
	}
}

func TestStreetHistogramsAllTies(t *testing.T) {
	t.Parallel()
	tie := EvaluatorFunc(func(poker.Hand) poker.HandRank { return 7 })
	deck, err := poker.ShortDeck(5)
	require.NoError(t, err)

	for _, buckets := range []int{2, 8} {
		t.Run(fmt.Sprintf("%d buckets", buckets), func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			cfg.Buckets = buckets
			b, err := NewBuilder(tie, deck, cfg)
			require.NoError(t, err)
			s := buildStrengths(t, b)

			// Every opponent ties, so every completion lands in one bucket.
			opp := deck.Size() - 7
			bucket := Bucket(opp*(opp-1)/2, b.MaxStrength(), buckets)
			rest := deck.Size() - 5

			flop, err := b.FlopHistograms(context.Background(), s)
			require.NoError(t, err)
			require.Equal(t, b.flop.Count(1), flop.Rows())
			for i := range flop.Rows() {
				row := flop.Row(i)
				require.Len(t, row, buckets)
				for k, n := range row {
					if k == bucket {
						require.Equal(t, uint16(rest*(rest-1)/2), n, "row %d", i)
					} else {
						require.Zero(t, n, "row %d bucket %d", i, k)
					}
				}
			}

			turn, err := b.TurnHistograms(context.Background(), s)
			require.NoError(t, err)
			for i := range turn.Rows() {
				for k, n := range turn.Row(i) {
					if k == bucket {
						require.Equal(t, uint8(deck.Size()-6), n, "row %d", i)
					} else {
						require.Zero(t, n, "row %d bucket %d", i, k)
					}
				}
			}
		})
	}
}

func TestStreetHistogramsRejectForeignStrengths(t *testing.T) {
	t.Parallel()
	small := newTestBuilder(t, 5, nil)
	s := buildStrengths(t, small)

	b := newTestBuilder(t, 6, nil)
	_, err := b.FlopHistograms(context.Background(), s)
	assert.ErrorContains(t, err, "ranks")
	_, err = b.TurnHistograms(context.Background(), nil)
	assert.Error(t, err)
	_, err = b.OCHSHistograms(context.Background(), s)
	assert.Error(t, err)
}
