package abstraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertables/poker"
)

// modClusters assigns hole class i to cluster i % k.
func modClusters(classes uint64, k int) *Clusters {
	c := &Clusters{Assignment: make([]uint32, classes)}
	for i := range c.Assignment {
		c.Assignment[i] = uint32(i % k)
	}
	return c
}

func TestClusterSizes(t *testing.T) {
	t.Parallel()
	b := newTestBuilder(t, 6, nil)

	sizes, err := b.ClusterSizes(modClusters(b.HoleClasses(), 3))
	require.NoError(t, err)
	require.Len(t, sizes, 3)

	var total uint64
	for _, n := range sizes {
		total += n
	}
	n := uint64(b.Deck().Size())
	assert.Equal(t, n*(n-1)/2, total)

	_, err = b.ClusterSizes(&Clusters{Assignment: []uint32{0, 1}})
	assert.Error(t, err)
}

func TestRiverHistogramsMatchBruteForce(t *testing.T) {
	t.Parallel()
	b := newTestBuilder(t, 6, nil)
	clusters := modClusters(b.HoleClasses(), 3)

	river, err := b.RiverHistograms(context.Background(), clusters)
	require.NoError(t, err)
	require.Equal(t, 3, river.Clusters)
	require.Equal(t, b.river.Count(1), river.Rows())

	for _, v := range river.Values {
		require.GreaterOrEqual(t, v, float32(0))
		require.LessOrEqual(t, v, float32(1))
	}

	eval := poker.NewEvaluator()
	cards := b.Deck().Cards()
	for _, boardText := range []string{"AsKhQd9c9s", "TsJsQsKsAs", "9h9dTcJdKc"} {
		board := poker.MustParseHand(boardText)
		for x, a := range cards {
			for _, c := range cards[x+1:] {
				hole := poker.NewHand(a, c)
				if hole.Overlaps(board) {
					continue
				}
				hero := eval.Evaluate(board | hole)

				credit := make([]int, 3)
				seen := make([]int, 3)
				for y, oa := range cards {
					for _, oc := range cards[y+1:] {
						opp := poker.NewHand(oa, oc)
						if opp.Overlaps(board | hole) {
							continue
						}
						k := clusters.Assignment[b.HoleIndex(opp)]
						seen[k]++
						switch villain := eval.Evaluate(board | opp); {
						case hero < villain:
							credit[k] += 2
						case hero == villain:
							credit[k]++
						}
					}
				}

				row := river.Row(b.RiverIndex(hole, board))
				for k := range 3 {
					want := float32(0)
					if seen[k] > 0 {
						want = float32(float64(credit[k]) / float64(2*seen[k]))
					}
					require.InDelta(t, want, row[k], 1e-6, "board %s hole %s cluster %d", board, hole, k)
				}
			}
		}
	}
}

func TestRiverHistogramsDeterministicAcrossWorkers(t *testing.T) {
	t.Parallel()
	deck, err := poker.ShortDeck(5)
	require.NoError(t, err)

	build := func(workers, chunk int) []float32 {
		cfg := testConfig()
		cfg.Workers, cfg.ChunkSize = workers, chunk
		b, err := NewBuilder(poker.NewEvaluator(), deck, cfg)
		require.NoError(t, err)
		river, err := b.RiverHistograms(context.Background(), modClusters(b.HoleClasses(), 4))
		require.NoError(t, err)
		return river.Values
	}

	assert.Equal(t, build(1, 1000), build(5, 2))
}

func TestRiverHistogramsRejectsBadClusters(t *testing.T) {
	t.Parallel()
	b := newTestBuilder(t, 5, nil)

	// Cluster 1 is never used.
	c := modClusters(b.HoleClasses(), 1)
	c.Assignment[0] = 2
	_, err := b.RiverHistograms(context.Background(), c)
	assert.ErrorContains(t, err, "cluster 1 has no hole classes")
}
