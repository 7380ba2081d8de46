package abstraction

import (
	"github.com/lox/pokertables/internal/isomorph"
	"github.com/lox/pokertables/poker"
)

// Evaluator ranks complete hands. Lower values are stronger and equal values
// are exact ties.
type Evaluator interface {
	Evaluate(hand poker.Hand) poker.HandRank
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(hand poker.Hand) poker.HandRank

// Evaluate calls f(hand).
func (f EvaluatorFunc) Evaluate(hand poker.Hand) poker.HandRank { return f(hand) }

// Indexer maps per-round card sets to dense canonical indices and back.
type Indexer interface {
	// Count returns the number of canonical combinations for rounds 0..round.
	Count(round int) uint64
	// Index returns the canonical index of the blocks; the round is len(blocks)-1.
	Index(blocks ...poker.Hand) uint64
	// Unindex returns a representative of index at round.
	Unindex(round int, index uint64) []poker.Hand
}

// IndexerFactory creates an indexer over deck with the given cards per round.
type IndexerFactory func(deck poker.Deck, blocks ...int) (Indexer, error)

// IsomorphIndexer is the default factory, collapsing suit permutations.
func IsomorphIndexer(deck poker.Deck, blocks ...int) (Indexer, error) {
	return isomorph.New(deck, blocks...)
}
