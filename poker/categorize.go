package poker

import "fmt"

// HoleClass returns the suit-independent name of a two-card hand: "QQ" for a
// pair, "AKs" when suited and "AKo" otherwise, higher rank first.
func HoleClass(hole Hand) (string, error) {
	if hole.CountCards() != 2 {
		return "", fmt.Errorf("hole class needs two cards, got %d", hole.CountCards())
	}
	lo, hi := hole.GetCard(0), hole.GetCard(1)
	if lo.Rank() > hi.Rank() {
		lo, hi = hi, lo
	}

	name := string([]byte{rankChars[hi.Rank()], rankChars[lo.Rank()]})
	switch {
	case lo.Rank() == hi.Rank():
		return name, nil
	case lo.Suit() == hi.Suit():
		return name + "s", nil
	default:
		return name + "o", nil
	}
}

// HoleClassCount returns how many distinct hole classes a deck holds:
// one pair per rank and a suited and offsuit class per rank pair.
func HoleClassCount(deck Deck) int {
	n := deck.Ranks()
	return n + n*(n-1)
}
