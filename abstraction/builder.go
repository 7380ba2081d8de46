package abstraction

import (
	"fmt"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/pokertables/poker"
)

// Builder computes abstraction tables for one evaluator and deck. It holds
// only immutable collaborators, so table builds may run concurrently.
type Builder struct {
	eval    Evaluator
	deck    poker.Deck
	cfg     Config
	logger  zerolog.Logger
	clock   quartz.Clock
	factory IndexerFactory

	maxStrength int

	showdown Indexer // [5,2]: board, then hole
	river    Indexer // [2,5]: hole, then board
	flop     Indexer // [2,3]
	turn     Indexer // [2,4]
	hole     Indexer // [2]
}

// Option customises a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for progress reporting.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// WithClock sets the clock driving progress ticks.
func WithClock(clock quartz.Clock) Option {
	return func(b *Builder) { b.clock = clock }
}

// WithIndexerFactory replaces the canonical indexer implementation.
func WithIndexerFactory(f IndexerFactory) Option {
	return func(b *Builder) { b.factory = f }
}

// NewBuilder validates cfg and prepares the indexers for deck.
func NewBuilder(eval Evaluator, deck poker.Deck, cfg Config, opts ...Option) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{
		eval:        eval,
		deck:        deck,
		cfg:         cfg,
		logger:      zerolog.Nop(),
		clock:       quartz.NewReal(),
		factory:     IsomorphIndexer,
		maxStrength: MaxStrength(deck),
	}
	for _, opt := range opts {
		opt(b)
	}

	if cfg.Buckets > b.maxStrength {
		return nil, fmt.Errorf("bucket count %d exceeds max strength %d", cfg.Buckets, b.maxStrength)
	}

	indexers := []struct {
		dst    *Indexer
		blocks []int
	}{
		{&b.showdown, []int{5, 2}},
		{&b.river, []int{2, 5}},
		{&b.flop, []int{2, 3}},
		{&b.turn, []int{2, 4}},
		{&b.hole, []int{2}},
	}
	for _, ix := range indexers {
		x, err := b.factory(deck, ix.blocks...)
		if err != nil {
			return nil, fmt.Errorf("create %v indexer: %w", ix.blocks, err)
		}
		*ix.dst = x
	}
	if got, want := b.hole.Count(0), uint64(poker.HoleClassCount(deck)); got != want {
		return nil, fmt.Errorf("hole indexer has %d classes, want %d", got, want)
	}
	return b, nil
}

// Config returns the builder configuration.
func (b *Builder) Config() Config { return b.cfg }

// Deck returns the deck the tables are built over.
func (b *Builder) Deck() poker.Deck { return b.deck }

// MaxStrength returns the exclusive upper bound of strength values.
func (b *Builder) MaxStrength() int { return b.maxStrength }

// ShowdownIndex returns the strength table slot of a (board, hole) showdown.
func (b *Builder) ShowdownIndex(board, hole poker.Hand) uint64 {
	return b.showdown.Index(board, hole)
}

// FlopIndex returns the flop table row of (hole, flop).
func (b *Builder) FlopIndex(hole, flop poker.Hand) uint64 { return b.flop.Index(hole, flop) }

// TurnIndex returns the turn table row of (hole, board) with a four-card board.
func (b *Builder) TurnIndex(hole, board poker.Hand) uint64 { return b.turn.Index(hole, board) }

// RiverIndex returns the river table row of (hole, board) with a five-card board.
func (b *Builder) RiverIndex(hole, board poker.Hand) uint64 { return b.river.Index(hole, board) }

// HoleIndex returns the canonical hole class of a two-card hand.
func (b *Builder) HoleIndex(hole poker.Hand) uint64 { return b.hole.Index(hole) }

// HoleClasses returns the number of canonical hole classes.
func (b *Builder) HoleClasses() uint64 { return b.hole.Count(0) }

// bucketOf looks up the strength bucket of showdown slot i.
func (b *Builder) bucketOf(s *StrengthTable, i uint64) (int, error) {
	if i >= uint64(len(s.Values)) {
		return 0, fmt.Errorf("showdown index %d out of range %d", i, len(s.Values))
	}
	return Bucket(int(s.Values[i]), b.maxStrength, b.cfg.Buckets), nil
}

// checkStrengths rejects a strength table built for another deck.
func (b *Builder) checkStrengths(s *StrengthTable) error {
	if s == nil {
		return fmt.Errorf("strength table is required")
	}
	if s.Ranks != b.deck.Ranks() {
		return fmt.Errorf("strength table built for %d ranks, deck has %d", s.Ranks, b.deck.Ranks())
	}
	if want := b.showdown.Count(1); uint64(len(s.Values)) != want {
		return fmt.Errorf("strength table has %d entries, want %d", len(s.Values), want)
	}
	return nil
}
