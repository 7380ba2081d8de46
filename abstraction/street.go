package abstraction

import (
	"context"
	"fmt"

	"github.com/lox/pokertables/poker"
)

// FlopTable holds, for every canonical (hole, flop), how many two-card
// runouts land in each strength bucket. Rows are indexed by the [2,3] indexer.
type FlopTable struct {
	Buckets int
	Counts  []uint16
}

// Row returns the bucket counts of row i.
func (t *FlopTable) Row(i uint64) []uint16 {
	n := uint64(t.Buckets)
	return t.Counts[i*n : (i+1)*n]
}

// Rows returns the number of rows.
func (t *FlopTable) Rows() uint64 { return uint64(len(t.Counts) / t.Buckets) }

// TurnTable holds, for every canonical (hole, turn board), how many river
// cards land in each strength bucket. Rows are indexed by the [2,4] indexer.
type TurnTable struct {
	Buckets int
	Counts  []uint8
}

// Row returns the bucket counts of row i.
func (t *TurnTable) Row(i uint64) []uint8 {
	n := uint64(t.Buckets)
	return t.Counts[i*n : (i+1)*n]
}

// Rows returns the number of rows.
func (t *TurnTable) Rows() uint64 { return uint64(len(t.Counts) / t.Buckets) }

// FlopHistograms enumerates every turn and river pair for each canonical flop.
func (b *Builder) FlopHistograms(ctx context.Context, s *StrengthTable) (*FlopTable, error) {
	if err := b.checkStrengths(s); err != nil {
		return nil, err
	}

	buckets := uint64(b.cfg.Buckets)
	rows := b.flop.Count(1)
	counts := make([]uint16, rows*buckets)
	cards := b.deck.Cards()

	err := b.forEachChunk(ctx, "flop", rows, func(_ int, lo, hi uint64) error {
		for i := lo; i < hi; i++ {
			blocks := b.flop.Unindex(1, i)
			hole, flop := blocks[0], blocks[1]
			seen := hole | flop
			row := counts[i*buckets : (i+1)*buckets]

			for j, c1 := range cards {
				if seen.HasCard(c1) {
					continue
				}
				for _, c2 := range cards[j+1:] {
					if seen.HasCard(c2) {
						continue
					}
					bucket, err := b.bucketOf(s, b.showdown.Index(flop|poker.NewHand(c1, c2), hole))
					if err != nil {
						return fmt.Errorf("flop %s hole %s: %w", flop, hole, err)
					}
					row[bucket]++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build flop histograms: %w", err)
	}
	return &FlopTable{Buckets: b.cfg.Buckets, Counts: counts}, nil
}

// TurnHistograms enumerates every river card for each canonical turn.
func (b *Builder) TurnHistograms(ctx context.Context, s *StrengthTable) (*TurnTable, error) {
	if err := b.checkStrengths(s); err != nil {
		return nil, err
	}

	buckets := uint64(b.cfg.Buckets)
	rows := b.turn.Count(1)
	counts := make([]uint8, rows*buckets)
	cards := b.deck.Cards()

	err := b.forEachChunk(ctx, "turn", rows, func(_ int, lo, hi uint64) error {
		for i := lo; i < hi; i++ {
			blocks := b.turn.Unindex(1, i)
			hole, board := blocks[0], blocks[1]
			seen := hole | board
			row := counts[i*buckets : (i+1)*buckets]

			for _, c := range cards {
				if seen.HasCard(c) {
					continue
				}
				bucket, err := b.bucketOf(s, b.showdown.Index(board|poker.Hand(c), hole))
				if err != nil {
					return fmt.Errorf("turn %s hole %s: %w", board, hole, err)
				}
				row[bucket]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build turn histograms: %w", err)
	}
	return &TurnTable{Buckets: b.cfg.Buckets, Counts: counts}, nil
}
