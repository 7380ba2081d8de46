package abstraction

import (
	"context"
	"fmt"

	"github.com/lox/pokertables/poker"
)

// StrengthTable holds the showdown strength of every canonical (board, hole)
// combination, indexed by the [5,2] indexer. A strength counts two credits
// for every opponent holding beaten and one for every holding tied, among
// holdings that share no card with the hero.
type StrengthTable struct {
	Ranks       int
	MaxStrength int
	Values      []uint16
}

// Bucket returns the strength bucket of slot i.
func (t *StrengthTable) Bucket(i uint64, buckets int) int {
	return Bucket(int(t.Values[i]), t.MaxStrength, buckets)
}

// Strengths ranks every showdown. Boards are independent units of work.
func (b *Builder) Strengths(ctx context.Context) (*StrengthTable, error) {
	values := make([]uint16, b.showdown.Count(1))
	boards := b.showdown.Count(0)

	err := b.forEachChunk(ctx, "strength", boards, func(_ int, lo, hi uint64) error {
		var list []holding
		var worse, tied tally
		for i := lo; i < hi; i++ {
			board := b.showdown.Unindex(0, i)[0]
			list = b.holdings(board, list[:0], func(hole poker.Hand) uint64 {
				return b.showdown.Index(board, hole)
			})
			sortWorstFirst(list)

			worse = tally{}
			err := ties(list, func(group []holding) error {
				// Phase one: aggregate the tied group.
				for _, h := range group {
					tied.add(h.a, h.b)
				}
				// Phase two: credit each member from the aggregates.
				for _, h := range group {
					v := 2*worse.excluding(h.a, h.b) + tied.excluding(h.a, h.b) + 1
					if v < 0 || v >= b.maxStrength {
						return fmt.Errorf("board %s: strength %d outside [0, %d)", board, v, b.maxStrength)
					}
					if h.slot >= uint64(len(values)) {
						return fmt.Errorf("board %s: showdown index %d out of range %d", board, h.slot, len(values))
					}
					values[h.slot] = uint16(v)
				}
				// The group is now strictly worse than everything after it.
				for _, h := range group {
					worse.add(h.a, h.b)
					tied.remove(h.a, h.b)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build strengths: %w", err)
	}

	return &StrengthTable{
		Ranks:       b.deck.Ranks(),
		MaxStrength: b.maxStrength,
		Values:      values,
	}, nil
}
