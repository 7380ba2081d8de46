package poker

import (
	"fmt"
	"math/rand"
)

// Deck is the immutable set of cards in play: the highest Ranks() ranks of
// every suit. The standard deck uses all thirteen.
type Deck struct {
	low   uint8
	cards []Card
	mask  Hand
}

// StandardDeck returns the 52-card deck.
func StandardDeck() Deck {
	d, _ := ShortDeck(NumRanks)
	return d
}

// ShortDeck returns a deck keeping the top ranks of every suit (ranks=9 is six-plus).
func ShortDeck(ranks int) (Deck, error) {
	if ranks < 5 || ranks > NumRanks {
		return Deck{}, fmt.Errorf("deck ranks must be within [5, %d], got %d", NumRanks, ranks)
	}

	d := Deck{low: uint8(NumRanks - ranks)}
	for suit := range uint8(NumSuits) {
		for rank := d.low; rank < NumRanks; rank++ {
			c := NewCard(rank, suit)
			d.cards = append(d.cards, c)
			d.mask |= Hand(c)
		}
	}
	return d, nil
}

// Cards returns the cards in ascending bit order. The slice must not be modified.
func (d Deck) Cards() []Card { return d.cards }

// Mask returns every card of the deck as a set.
func (d Deck) Mask() Hand { return d.mask }

// Size returns the number of cards.
func (d Deck) Size() int { return len(d.cards) }

// Ranks returns the number of ranks per suit.
func (d Deck) Ranks() int { return NumRanks - int(d.low) }

// LowRank returns the lowest rank in play.
func (d Deck) LowRank() uint8 { return d.low }

// Contains reports whether every card of h belongs to the deck.
func (d Deck) Contains(h Hand) bool {
	return h&^d.mask == 0
}

// Shoe deals shuffled cards from a deck.
type Shoe struct {
	cards []Card
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewShoe creates a shuffled shoe over the deck with an explicit RNG.
func NewShoe(deck Deck, rng *rand.Rand) *Shoe {
	s := &Shoe{
		cards: append([]Card(nil), deck.cards...),
		rng:   rng,
	}
	s.Shuffle()
	return s
}

// Shuffle shuffles the shoe using Fisher-Yates
func (s *Shoe) Shuffle() {
	s.next = 0
	for i := len(s.cards) - 1; i > 0; i-- {
		var j int
		if s.rng != nil {
			j = s.rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Deal deals n cards as a set, or 0 when the shoe runs out.
func (s *Shoe) Deal(n int) Hand {
	if s.next+n > len(s.cards) {
		return 0
	}
	h := NewHand(s.cards[s.next : s.next+n]...)
	s.next += n
	return h
}

// DealOne deals a single card from the shoe
func (s *Shoe) DealOne() Card {
	if s.next >= len(s.cards) {
		return 0
	}
	card := s.cards[s.next]
	s.next++
	return card
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards) - s.next
}
