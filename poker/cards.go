package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single bit in a 52-bit set.
// Layout: [13 spades][13 hearts][13 diamonds][13 clubs], rank 0 is the deuce.
type Card uint64

// Hand is a set of cards, one bit per card.
type Hand uint64

// Suits
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Ranks (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const (
	// NumSuits is the number of suits in every deck.
	NumSuits = 4
	// NumRanks is the number of ranks in a standard deck.
	NumRanks = 13
	// NumCards is the number of bit positions a Hand can use.
	NumCards = NumSuits * NumRanks

	// RankMask selects one suit lane of a Hand.
	RankMask = 0x1FFF
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard creates a card from rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (suit*NumRanks + rank)
}

// Index returns the bit position of the card (0-51), or -1 for the zero card.
func (c Card) Index() int {
	if c == 0 {
		return -1
	}
	return bits.TrailingZeros64(uint64(c))
}

// Rank returns the rank of the card (0-12).
func (c Card) Rank() uint8 {
	return uint8(c.Index() % NumRanks)
}

// Suit returns the suit of the card (0-3).
func (c Card) Suit() uint8 {
	return uint8(c.Index() / NumRanks)
}

// String returns the two character notation, e.g. "As".
func (c Card) String() string {
	i := c.Index()
	if i < 0 || i >= NumCards {
		return "??"
	}
	return string(rankChars[i%NumRanks]) + string(suitChars[i/NumRanks])
}

// ParseCard parses a string like "As" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string: %q", s)
	}

	rank := strings.IndexByte(rankChars, upper(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank: %c", s[0])
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit: %c", s[1])
	}

	return NewCard(uint8(rank), uint8(suit)), nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// NewHand creates a hand from multiple cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// ParseHand parses cards given either as separate arguments ("As", "Kd") or
// concatenated ("AsKd"). Duplicate cards are rejected.
func ParseHand(cards ...string) (Hand, error) {
	var h Hand
	for _, group := range cards {
		group = strings.ReplaceAll(group, " ", "")
		if len(group)%2 != 0 {
			return 0, fmt.Errorf("invalid card string length: %q", group)
		}
		for i := 0; i < len(group); i += 2 {
			c, err := ParseCard(group[i : i+2])
			if err != nil {
				return 0, err
			}
			if h.HasCard(c) {
				return 0, fmt.Errorf("duplicate card: %s", c)
			}
			h |= Hand(c)
		}
	}
	return h, nil
}

// MustParseHand parses cards and panics on error (for tests).
func MustParseHand(cards ...string) Hand {
	h, err := ParseHand(cards...)
	if err != nil {
		panic(fmt.Sprintf("failed to parse hand %v: %v", cards, err))
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard checks if the hand contains a specific card.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// Overlaps reports whether the two sets share a card.
func (h Hand) Overlaps(other Hand) bool {
	return h&other != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the ranks held in one suit as a 13-bit mask.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16((h >> (suit * NumRanks)) & RankMask)
}

// GetCard returns the i-th lowest card of the hand, or 0 if out of range.
func (h Hand) GetCard(i int) Card {
	rest := uint64(h)
	for ; rest != 0; i-- {
		low := rest & -rest
		if i == 0 {
			return Card(low)
		}
		rest ^= low
	}
	return 0
}

// Cards returns the cards of the hand in ascending bit order.
func (h Hand) Cards() []Card {
	out := make([]Card, 0, h.CountCards())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		out = append(out, Card(rest&-rest))
	}
	return out
}

// String returns the concatenated notation, e.g. "2cAs".
func (h Hand) String() string {
	var sb strings.Builder
	for _, c := range h.Cards() {
		sb.WriteString(c.String())
	}
	return sb.String()
}
