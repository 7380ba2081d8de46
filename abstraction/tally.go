package abstraction

import (
	"cmp"
	"slices"

	"github.com/lox/pokertables/poker"
)

// tally counts hole pairs, in total and per card, so the number of pairs
// sharing no card with a given hand is a constant-time subtraction.
type tally struct {
	total   int
	perCard [poker.NumCards]int
}

func (t *tally) add(a, b uint8) {
	t.total++
	t.perCard[a]++
	t.perCard[b]++
}

func (t *tally) remove(a, b uint8) {
	t.total--
	t.perCard[a]--
	t.perCard[b]--
}

// excluding returns how many counted pairs share no card with (a, b). Only
// the pair (a, b) itself holds both cards, so a counted (a, b) is removed
// twice; callers add it back.
func (t *tally) excluding(a, b uint8) int {
	return t.total - t.perCard[a] - t.perCard[b]
}

// holding is one hole pair on a fixed board.
type holding struct {
	rank    poker.HandRank
	a, b    uint8  // card indices, a < b
	slot    uint64 // output index
	cluster uint32
}

// holdings evaluates every hole pair of deck disjoint from board, appending to
// list. Slots are filled by slot(hole).
func (b *Builder) holdings(board poker.Hand, list []holding, slot func(hole poker.Hand) uint64) []holding {
	cards := b.deck.Cards()
	for i, ca := range cards {
		if board.HasCard(ca) {
			continue
		}
		for _, cb := range cards[i+1:] {
			if board.HasCard(cb) {
				continue
			}
			hole := poker.NewHand(ca, cb)
			list = append(list, holding{
				rank: b.eval.Evaluate(board | hole),
				a:    uint8(ca.Index()),
				b:    uint8(cb.Index()),
				slot: slot(hole),
			})
		}
	}
	return list
}

// sortWorstFirst orders holdings from weakest to strongest.
func sortWorstFirst(list []holding) {
	slices.SortFunc(list, func(x, y holding) int {
		return cmp.Compare(y.rank, x.rank)
	})
}

// ties calls fn for every run of equal-strength holdings in a sorted list.
func ties(list []holding, fn func(group []holding) error) error {
	for start := 0; start < len(list); {
		end := start + 1
		for end < len(list) && list[end].rank == list[start].rank {
			end++
		}
		if err := fn(list[start:end]); err != nil {
			return err
		}
		start = end
	}
	return nil
}
