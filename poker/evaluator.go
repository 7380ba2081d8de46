package poker

import "math/bits"

// HandRank represents the strength of a poker hand. Lower values are stronger.
type HandRank uint16

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Hands within a category are scored by the colex rank of the ranks that
// decide them, so every category has a fixed number of slots.
var categorySize = [...]int{
	HighCard:      1287,     // C(13,5)
	Pair:          13 * 220, // pair rank, C(12,3) kickers
	TwoPair:       78 * 11,  // C(13,2) pairs, kicker
	ThreeOfAKind:  13 * 66,  // trips rank, C(12,2) kickers
	Straight:      10,
	Flush:         1287,
	FullHouse:     13 * 12,
	FourOfAKind:   13 * 12,
	StraightFlush: 10,
}

var categoryBase = func() (base [len(categorySize) + 1]int) {
	for i, n := range categorySize {
		base[i+1] = base[i] + n
	}
	return base
}()

// WorstHandRank is one past the weakest possible strength.
const WorstHandRank = HandRank(1287 + 13*220 + 78*11 + 13*66 + 10 + 1287 + 13*12 + 13*12 + 10)

// Type returns the category of hand (pair, flush, etc.).
func (hr HandRank) Type() HandType {
	score := int(WorstHandRank) - 1 - int(hr)
	t := HighCard
	for t < StraightFlush && score >= categoryBase[t+1] {
		t++
	}
	return t
}

// String returns a human-readable hand description.
func (hr HandRank) String() string {
	if hr >= WorstHandRank {
		return "Unknown"
	}
	switch hr.Type() {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	default:
		return "Straight Flush"
	}
}

// Evaluator ranks 5 to 7 card hands. It holds no state and is safe for
// concurrent use.
type Evaluator struct{}

// NewEvaluator returns an evaluator.
func NewEvaluator() Evaluator { return Evaluator{} }

// Evaluate returns the strength of the best five-card hand contained in hand.
// Lower values are stronger; equal values split the pot.
func (Evaluator) Evaluate(hand Hand) HandRank {
	t, index := classify(hand)
	return WorstHandRank - 1 - HandRank(categoryBase[t]+index)
}

// classify returns the category of hand and its score within the category.
func classify(hand Hand) (HandType, int) {
	var suits [NumSuits]uint16
	var ranks, odd uint16
	flush := uint16(0)
	for s := range uint8(NumSuits) {
		m := hand.GetSuitMask(s)
		suits[s] = m
		ranks |= m
		odd ^= m
		if bits.OnesCount16(m) >= 5 {
			flush = m
		}
	}
	quads := suits[0] & suits[1] & suits[2] & suits[3]
	twoPlus := suits[0]&(suits[1]|suits[2]|suits[3]) | suits[1]&(suits[2]|suits[3]) | suits[2]&suits[3]
	trips := twoPlus & odd
	pairs := twoPlus &^ odd &^ quads

	if flush != 0 {
		if top, ok := straightTop(flush); ok {
			return StraightFlush, top
		}
	}
	if quads != 0 {
		q := highest(quads)
		return FourOfAKind, int(q)*12 + slot(highest(ranks&^bit(q)), bit(q))
	}
	if trips != 0 && (bits.OnesCount16(trips) > 1 || pairs != 0) {
		t := highest(trips)
		p := highest((trips | pairs) &^ bit(t))
		return FullHouse, int(t)*12 + slot(p, bit(t))
	}
	if flush != 0 {
		return Flush, colex(keepTop(flush, 5))
	}
	if top, ok := straightTop(ranks); ok {
		return Straight, top
	}
	if trips != 0 {
		t := bit(highest(trips))
		return ThreeOfAKind, int(highest(t))*66 + colex(compress(keepTop(ranks&^t, 2), t))
	}
	if bits.OnesCount16(pairs) >= 2 {
		two := keepTop(pairs, 2)
		return TwoPair, colex(two)*11 + slot(highest(ranks&^two), two)
	}
	if pairs != 0 {
		p := bit(highest(pairs))
		return Pair, int(highest(p))*220 + colex(compress(keepTop(ranks&^p, 3), p))
	}
	return HighCard, colex(keepTop(ranks, 5))
}

// straightTop returns the top rank of the best straight in mask, counting
// from zero for the five-high wheel.
func straightTop(mask uint16) (int, bool) {
	// Shift so the ace can also play below the deuce.
	m := mask<<1 | mask>>Ace&1
	run := m & (m >> 1) & (m >> 2) & (m >> 3) & (m >> 4)
	if run == 0 {
		return 0, false
	}
	return bits.Len16(run) - 1, true
}

func bit(rank uint8) uint16 { return 1 << rank }

func highest(mask uint16) uint8 { return uint8(bits.Len16(mask) - 1) }

// keepTop keeps the n highest ranks of mask.
func keepTop(mask uint16, n int) uint16 {
	for bits.OnesCount16(mask) > n {
		mask &= mask - 1
	}
	return mask
}

// slot is the position of rank among the ranks not in used.
func slot(rank uint8, used uint16) int {
	return int(rank) - bits.OnesCount16(used&(bit(rank)-1))
}

// compress removes the used ranks from set, shifting higher ranks down.
func compress(set, used uint16) uint16 {
	var out uint16
	for rest := set; rest != 0; rest &= rest - 1 {
		out |= bit(uint8(slot(uint8(bits.TrailingZeros16(rest)), used)))
	}
	return out
}

var rankBinomial = func() (t [NumRanks + 1][6]int) {
	for n := range t {
		t[n][0] = 1
		for k := 1; k < len(t[n]) && k <= n; k++ {
			t[n][k] = t[n-1][k-1] + t[n-1][k]
		}
	}
	return t
}()

// colex ranks a set of at most five ranks; larger top ranks sort later.
func colex(set uint16) int {
	idx, k := 0, 1
	for rest := set; rest != 0; rest &= rest - 1 {
		idx += rankBinomial[bits.TrailingZeros16(rest)][k]
		k++
	}
	return idx
}
