// Package abstraction builds the offline hand-strength tables consumed by the
// solver's card abstraction.
//
// Every table is a pure function of an Evaluator and the canonical indexers
// derived from a poker.Deck. The strength table ranks every canonical
// (board, hole) showdown with tie credit split between equal hands; the flop,
// turn, OCHS and river tables are histograms derived from it.
//
// # Basic Usage
//
//	b, err := abstraction.NewBuilder(poker.NewEvaluator(), poker.StandardDeck(), abstraction.DefaultConfig())
//	strengths, err := b.Strengths(ctx)
//	flop, err := b.FlopHistograms(ctx, strengths)
//	row := flop.Row(i) // bucket counts for the i-th canonical flop
//
// # Short Decks
//
// Exhaustive builds over the standard deck take hours. Builders accept any
// poker.ShortDeck, which keeps tests fast while exercising the same code paths.
package abstraction
