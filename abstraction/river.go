package abstraction

import (
	"context"
	"fmt"

	"github.com/lox/pokertables/poker"
)

// RiverTable holds, for every canonical (hole, board) river, the hero's
// expected share against a random holding of each opponent cluster: wins
// count one, ties one half. Rows are indexed by the [2,5] indexer.
type RiverTable struct {
	Clusters     int
	ClusterSizes []uint64
	Values       []float32
}

// Row returns the per-cluster results of row i.
func (t *RiverTable) Row(i uint64) Histogram {
	n := uint64(t.Clusters)
	return Histogram(t.Values[i*n : (i+1)*n])
}

// Rows returns the number of rows.
func (t *RiverTable) Rows() uint64 { return uint64(len(t.Values) / t.Clusters) }

// ClusterSizes counts the raw hole pairs of the deck in each cluster.
func (b *Builder) ClusterSizes(clusters *Clusters) ([]uint64, error) {
	if err := clusters.Validate(b.hole.Count(0)); err != nil {
		return nil, err
	}
	sizes := make([]uint64, clusters.K())
	b.eachPair(func(a, c poker.Card) {
		sizes[clusters.Assignment[b.hole.Index(poker.NewHand(a, c))]]++
	})
	return sizes, nil
}

func (b *Builder) eachPair(fn func(a, c poker.Card)) {
	cards := b.deck.Cards()
	for i, a := range cards {
		for _, c := range cards[i+1:] {
			fn(a, c)
		}
	}
}

// RiverHistograms compares every river holding against each opponent cluster
// separately, splitting tie credit the same way Strengths does.
func (b *Builder) RiverHistograms(ctx context.Context, clusters *Clusters) (*RiverTable, error) {
	sizes, err := b.ClusterSizes(clusters)
	if err != nil {
		return nil, err
	}
	k := len(sizes)

	var pairCluster [poker.NumCards][poker.NumCards]uint32
	b.eachPair(func(a, c poker.Card) {
		pairCluster[a.Index()][c.Index()] = clusters.Assignment[b.hole.Index(poker.NewHand(a, c))]
	})

	rows := b.river.Count(1)
	values := make([]float32, rows*uint64(k))

	err = b.forEachChunk(ctx, "river", b.showdown.Count(0), func(_ int, lo, hi uint64) error {
		var list []holding
		var credit []int
		worse := make([]tally, k)
		tied := make([]tally, k)

		for i := lo; i < hi; i++ {
			board := b.showdown.Unindex(0, i)[0]
			list = b.holdings(board, list[:0], func(hole poker.Hand) uint64 {
				return b.river.Index(hole, board)
			})
			for j := range list {
				h := &list[j]
				h.cluster = pairCluster[h.a][h.b]
				if h.slot >= rows {
					return fmt.Errorf("board %s: river index %d out of range %d", board, h.slot, rows)
				}
			}
			sortWorstFirst(list)

			if n := len(list) * k; cap(credit) < n {
				credit = make([]int, n)
			} else {
				credit = credit[:n]
			}
			for c := range worse {
				worse[c] = tally{}
			}

			pos := 0
			err := ties(list, func(group []holding) error {
				for _, h := range group {
					tied[h.cluster].add(h.a, h.b)
				}
				for _, h := range group {
					row := credit[pos*k : (pos+1)*k]
					for c := range k {
						row[c] = 2*worse[c].excluding(h.a, h.b) + tied[c].excluding(h.a, h.b)
						if int(h.cluster) == c {
							row[c]++
						}
					}
					pos++
				}
				for _, h := range group {
					worse[h.cluster].add(h.a, h.b)
					tied[h.cluster].remove(h.a, h.b)
				}
				return nil
			})
			if err != nil {
				return err
			}

			for c := range k {
				if uint64(worse[c].total) > sizes[c] {
					return fmt.Errorf("board %s: cluster %d has %d holdings, population %d", board, c, worse[c].total, sizes[c])
				}
			}

			// worse now holds every holding on the board: the cluster
			// populations minus the board-blocked pairs.
			for j, h := range list {
				row := values[h.slot*uint64(k) : (h.slot+1)*uint64(k)]
				for c := range k {
					reachable := worse[c].excluding(h.a, h.b)
					if int(h.cluster) == c {
						reachable++
					}
					if reachable <= 0 {
						row[c] = 0
						continue
					}
					row[c] = float32(float64(credit[j*k+c]) / float64(2*reachable))
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build river histograms: %w", err)
	}

	return &RiverTable{Clusters: k, ClusterSizes: sizes, Values: values}, nil
}
