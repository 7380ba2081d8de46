package abstraction

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/lox/pokertables/poker"
)

// OCHSTable holds one normalised strength histogram per canonical hole class,
// weighted over every board the hole can face. These histograms are the input
// of the external OCHS clustering step.
type OCHSTable struct {
	Buckets int
	Values  []float32
}

// Row returns the histogram of hole class i.
func (t *OCHSTable) Row(i uint64) Histogram {
	n := uint64(t.Buckets)
	return Histogram(t.Values[i*n : (i+1)*n])
}

// Rows returns the number of hole classes.
func (t *OCHSTable) Rows() uint64 { return uint64(len(t.Values) / t.Buckets) }

// SuitMultiplicity returns how many raw (hole, board) deals share the suit
// pattern of the given pair: suits holding identical ranks in both sets are
// interchangeable, so the count is the multinomial 4! / prod(group sizes!).
func SuitMultiplicity(hole, board poker.Hand) uint64 {
	type lane struct{ hole, board uint16 }
	var lanes [poker.NumSuits]lane
	for s := range uint8(poker.NumSuits) {
		lanes[s] = lane{hole.GetSuitMask(s), board.GetSuitMask(s)}
	}
	slices.SortFunc(lanes[:], func(x, y lane) int {
		if c := cmp.Compare(x.hole, y.hole); c != 0 {
			return c
		}
		return cmp.Compare(x.board, y.board)
	})

	remaining := uint64(poker.NumSuits)
	ways := uint64(1)
	for start := 0; start < len(lanes); {
		end := start + 1
		for end < len(lanes) && lanes[end] == lanes[start] {
			end++
		}
		size := uint64(end - start)
		for k := range size {
			ways = ways * (remaining - k) / (k + 1)
		}
		remaining -= size
		start = end
	}
	return ways
}

// OCHSHistograms accumulates, per hole class, the strength buckets of every
// showdown weighted by its suit multiplicity, then normalises each class.
func (b *Builder) OCHSHistograms(ctx context.Context, s *StrengthTable) (*OCHSTable, error) {
	if err := b.checkStrengths(s); err != nil {
		return nil, err
	}

	buckets := uint64(b.cfg.Buckets)
	classes := b.hole.Count(0)
	partial := make([][]uint64, b.cfg.Workers)

	err := b.forEachChunk(ctx, "ochs", b.showdown.Count(1), func(worker int, lo, hi uint64) error {
		acc := partial[worker]
		if acc == nil {
			acc = make([]uint64, classes*buckets)
			partial[worker] = acc
		}
		for i := lo; i < hi; i++ {
			blocks := b.showdown.Unindex(1, i)
			board, hole := blocks[0], blocks[1]

			class := b.hole.Index(hole)
			if class >= classes {
				return fmt.Errorf("hole %s: class %d out of range %d", hole, class, classes)
			}
			bucket, err := b.bucketOf(s, i)
			if err != nil {
				return err
			}
			acc[class*buckets+uint64(bucket)] += SuitMultiplicity(hole, board)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build ochs histograms: %w", err)
	}

	// Integer sums make the merge independent of scheduling.
	total := make([]uint64, classes*buckets)
	for _, acc := range partial {
		for i, w := range acc {
			total[i] += w
		}
	}

	values := make([]float32, classes*buckets)
	for c := range classes {
		h := NewHistogram(int(buckets))
		for k := range buckets {
			h.Put(int(k), float32(total[c*buckets+k]))
		}
		copy(values[c*buckets:], h.Norm())
	}
	return &OCHSTable{Buckets: b.cfg.Buckets, Values: values}, nil
}
