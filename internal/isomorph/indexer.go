// Package isomorph maps tuples of card sets to dense indices that are
// invariant under suit permutation.
//
// A hand is split into rounds (for example two hole cards then five board
// cards). For every suit the cards of each round form a tuple of rank sets.
// The per-suit card counts form a configuration; suits sharing the same
// per-round counts are interchangeable, so their tuples are indexed as a
// multiset. The final index is the configuration offset plus the mixed-radix
// combination of those multiset indices.
package isomorph

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
	"sort"

	"github.com/lox/pokertables/poker"
)

const (
	maxRounds = 4
	maxCards  = 7
)

// suitShape holds the number of cards a single suit receives in each round.
type suitShape [maxRounds]uint8

// configuration is the shape of every suit, sorted descending.
type configuration [poker.NumSuits]suitShape

type group struct {
	start  int    // first suit of the group within the sorted configuration
	size   int    // suits sharing the shape
	tuples uint64 // rank-set tuples for one suit of this shape
	count  uint64 // multisets of size `size` drawn from `tuples`
}

type layout struct {
	config configuration
	groups []group
	offset uint64
	count  uint64
}

type round struct {
	layouts []layout
	lookup  map[configuration]int
	total   uint64
}

// Indexer is immutable after construction and safe for concurrent use.
type Indexer struct {
	ranks  int
	low    uint8
	full   uint16
	blocks []int
	rounds []round
}

// New creates an indexer over deck for the given cards per round.
func New(deck poker.Deck, blocks ...int) (*Indexer, error) {
	if len(blocks) == 0 {
		return nil, errors.New("at least one round is required")
	}
	if len(blocks) > maxRounds {
		return nil, fmt.Errorf("at most %d rounds are supported, got %d", maxRounds, len(blocks))
	}
	total := 0
	for i, n := range blocks {
		if n <= 0 {
			return nil, fmt.Errorf("round %d must hold at least one card", i)
		}
		total += n
	}
	if total > maxCards {
		return nil, fmt.Errorf("at most %d cards are supported, got %d", maxCards, total)
	}

	x := &Indexer{
		ranks:  deck.Ranks(),
		low:    deck.LowRank(),
		full:   uint16(1)<<deck.Ranks() - 1,
		blocks: slices.Clone(blocks),
		rounds: make([]round, len(blocks)),
	}
	for r := range blocks {
		x.rounds[r] = x.buildRound(r)
	}
	return x, nil
}

// Rounds returns the number of rounds.
func (x *Indexer) Rounds() int { return len(x.blocks) }

// Blocks returns the cards dealt in each round.
func (x *Indexer) Blocks() []int { return slices.Clone(x.blocks) }

// Count returns the number of canonical combinations for rounds 0..r.
func (x *Indexer) Count(r int) uint64 { return x.rounds[r].total }

// Index returns the canonical index of the given per-round card sets. The
// sets must be disjoint, belong to the deck and match the round sizes; the
// round is implied by len(blocks).
func (x *Indexer) Index(blocks ...poker.Hand) uint64 {
	r := len(blocks) - 1

	var shape configuration
	var tuple [poker.NumSuits]uint64
	for s := range poker.NumSuits {
		var used uint16
		var t uint64
		avail := x.ranks
		for j := 0; j <= r; j++ {
			m := x.lane(blocks[j], s)
			n := bits.OnesCount16(m)
			shape[s][j] = uint8(n)
			t = t*binomial(uint64(avail), uint64(n)) + colexRank(compress(m, used))
			used |= m
			avail -= n
		}
		tuple[s] = t
	}

	order := [poker.NumSuits]int{0, 1, 2, 3}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && suitBefore(shape, tuple, order[j], order[j-1]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	var sorted configuration
	for i, s := range order {
		sorted[i] = shape[s]
	}
	rd := &x.rounds[r]
	l := &rd.layouts[rd.lookup[sorted]]

	var idx uint64
	for _, g := range l.groups {
		var ms uint64
		for i := range g.size {
			k := uint64(g.size - i)
			ms += binomial(tuple[order[g.start+i]]+k-1, k)
		}
		idx = idx*g.count + ms
	}
	return l.offset + idx
}

// Unindex returns the canonical representative of index at round r.
func (x *Indexer) Unindex(r int, index uint64) []poker.Hand {
	rd := &x.rounds[r]
	p := sort.Search(len(rd.layouts), func(i int) bool {
		return rd.layouts[i].offset > index
	}) - 1
	l := &rd.layouts[p]

	rem := index - l.offset
	var tuple [poker.NumSuits]uint64
	for gi := len(l.groups) - 1; gi >= 0; gi-- {
		g := l.groups[gi]
		ms := rem % g.count
		rem /= g.count
		for i := range g.size {
			k := uint64(g.size - i)
			w := largestBelow(ms, k, k-1, g.tuples+k-2)
			ms -= binomial(w, k)
			tuple[g.start+i] = w - (k - 1)
		}
	}

	out := make([]poker.Hand, r+1)
	for s := range poker.NumSuits {
		shape := l.config[s]

		var parts [maxRounds]uint64
		t := tuple[s]
		for j := r; j >= 0; j-- {
			avail := x.ranks
			for i := range j {
				avail -= int(shape[i])
			}
			c := binomial(uint64(avail), uint64(shape[j]))
			parts[j] = t % c
			t /= c
		}

		var used uint16
		for j := 0; j <= r; j++ {
			m := expand(colexUnrank(parts[j], int(shape[j]), x.ranks), used, x.ranks)
			out[j] |= poker.Hand(m) << (s*poker.NumRanks + int(x.low))
			used |= m
		}
	}
	return out
}

func (x *Indexer) lane(h poker.Hand, suit int) uint16 {
	return uint16(uint64(h)>>(suit*poker.NumRanks+int(x.low))) & x.full
}

func (x *Indexer) buildRound(r int) round {
	configs := x.configurations(r)
	rd := round{
		layouts: make([]layout, 0, len(configs)),
		lookup:  make(map[configuration]int, len(configs)),
	}
	for _, c := range configs {
		l := layout{config: c, offset: rd.total, count: 1}
		for s := 0; s < poker.NumSuits; {
			e := s + 1
			for e < poker.NumSuits && c[e] == c[s] {
				e++
			}
			tuples := x.tupleCount(c[s])
			size := e - s
			g := group{
				start:  s,
				size:   size,
				tuples: tuples,
				count:  binomial(tuples+uint64(size)-1, uint64(size)),
			}
			l.groups = append(l.groups, g)
			l.count *= g.count
			s = e
		}
		rd.lookup[c] = len(rd.layouts)
		rd.layouts = append(rd.layouts, l)
		rd.total += l.count
	}
	return rd
}

// configurations lists every distinct sorted shape for rounds 0..r.
func (x *Indexer) configurations(r int) []configuration {
	seen := make(map[configuration]struct{})
	var out []configuration
	var cur configuration
	var used [poker.NumSuits]int

	var place func(j, suit, left int)
	place = func(j, suit, left int) {
		if suit == poker.NumSuits {
			if left != 0 {
				return
			}
			if j == r {
				c := canonical(cur)
				if _, ok := seen[c]; !ok {
					seen[c] = struct{}{}
					out = append(out, c)
				}
				return
			}
			place(j+1, 0, x.blocks[j+1])
			return
		}
		for n := 0; n <= left && used[suit]+n <= x.ranks; n++ {
			cur[suit][j] = uint8(n)
			used[suit] += n
			place(j, suit+1, left-n)
			used[suit] -= n
		}
		cur[suit][j] = 0
	}
	place(0, 0, x.blocks[0])

	slices.SortFunc(out, func(a, b configuration) int {
		for s := range a {
			if c := compareShape(a[s], b[s]); c != 0 {
				return -c
			}
		}
		return 0
	})
	return out
}

func (x *Indexer) tupleCount(shape suitShape) uint64 {
	count := uint64(1)
	avail := x.ranks
	for _, n := range shape {
		count *= binomial(uint64(avail), uint64(n))
		avail -= int(n)
	}
	return count
}

func canonical(c configuration) configuration {
	slices.SortFunc(c[:], func(a, b suitShape) int { return -compareShape(a, b) })
	return c
}

func compareShape(a, b suitShape) int {
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// suitBefore orders suits by descending shape, then descending tuple index.
func suitBefore(shape configuration, tuple [poker.NumSuits]uint64, a, b int) bool {
	if c := compareShape(shape[a], shape[b]); c != 0 {
		return c > 0
	}
	return tuple[a] > tuple[b]
}
