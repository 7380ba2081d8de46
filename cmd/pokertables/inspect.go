package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lox/pokertables/abstraction"
	"github.com/lox/pokertables/internal/config"
	"github.com/lox/pokertables/internal/store"
	"github.com/lox/pokertables/poker"
)

type InspectCmd struct {
	Hole   string `help:"hole cards, e.g. AsKd"`
	Board  string `help:"three to five board cards, e.g. 2c7h9s"`
	Random int    `help:"deal a random hole and this many board cards instead" default:"0"`
	Seed   int64  `help:"random seed; 0 uses time seed" default:"0"`
}

func (cmd *InspectCmd) Run(_ context.Context, cfg *config.BuildConfig) error {
	b, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	hole, board, err := cmd.hand(b.Deck())
	if err != nil {
		return err
	}
	return inspect(os.Stdout, cfg, b, hole, board)
}

func (cmd *InspectCmd) hand(deck poker.Deck) (hole, board poker.Hand, err error) {
	if cmd.Random > 0 {
		if cmd.Random < 3 || cmd.Random > 5 {
			return 0, 0, fmt.Errorf("random board size must be 3, 4 or 5")
		}
		seed := cmd.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		shoe := poker.NewShoe(deck, rand.New(rand.NewSource(seed)))
		return shoe.Deal(2), shoe.Deal(cmd.Random), nil
	}

	if hole, err = poker.ParseHand(cmd.Hole); err != nil {
		return 0, 0, fmt.Errorf("hole: %w", err)
	}
	if board, err = poker.ParseHand(cmd.Board); err != nil {
		return 0, 0, fmt.Errorf("board: %w", err)
	}
	switch {
	case hole.CountCards() != 2:
		return 0, 0, fmt.Errorf("hole must hold two cards, got %d", hole.CountCards())
	case board.CountCards() < 3 || board.CountCards() > 5:
		return 0, 0, fmt.Errorf("board must hold three to five cards, got %d", board.CountCards())
	case hole.Overlaps(board):
		return 0, 0, errors.New("hole and board share a card")
	case !deck.Contains(hole | board):
		return 0, 0, fmt.Errorf("cards outside the %d-rank deck", deck.Ranks())
	}
	return hole, board, nil
}

// inspect prints every table entry that applies to the hand. Missing tables
// are skipped.
func inspect(w io.Writer, cfg *config.BuildConfig, b *abstraction.Builder, hole, board poker.Hand) error {
	class, err := poker.HoleClass(hole)
	if err != nil {
		return err
	}
	rank := poker.NewEvaluator().Evaluate(hole | board)
	fmt.Fprintf(w, "hand      %s | %s (%s, %s)\n", hole, board, class, rank)

	var ochs abstraction.OCHSTable
	if ok, err := loadTable(cfg, &ochs); err != nil {
		return err
	} else if ok {
		i := b.HoleIndex(hole)
		if err := checkSlot(&ochs, i, ochs.Rows()); err != nil {
			return err
		}
		fmt.Fprintf(w, "ochs      %s\n", formatRow(ochs.Row(i)))
	}

	switch board.CountCards() {
	case 3:
		var flop abstraction.FlopTable
		if ok, err := loadTable(cfg, &flop); err != nil {
			return err
		} else if ok {
			i := b.FlopIndex(hole, board)
			if err := checkSlot(&flop, i, flop.Rows()); err != nil {
				return err
			}
			fmt.Fprintf(w, "flop      %v\n", flop.Row(i))
		}
	case 4:
		var turn abstraction.TurnTable
		if ok, err := loadTable(cfg, &turn); err != nil {
			return err
		} else if ok {
			i := b.TurnIndex(hole, board)
			if err := checkSlot(&turn, i, turn.Rows()); err != nil {
				return err
			}
			fmt.Fprintf(w, "turn      %v\n", turn.Row(i))
		}
	case 5:
		var strengths abstraction.StrengthTable
		if ok, err := loadTable(cfg, &strengths); err != nil {
			return err
		} else if ok {
			i := b.ShowdownIndex(board, hole)
			if err := checkSlot(&strengths, i, uint64(len(strengths.Values))); err != nil {
				return err
			}
			fmt.Fprintf(w, "strength  %d/%d (bucket %d of %d)\n",
				strengths.Values[i], strengths.MaxStrength, strengths.Bucket(i, cfg.Buckets), cfg.Buckets)
		}

		var river abstraction.RiverTable
		if ok, err := loadTable(cfg, &river); err != nil {
			return err
		} else if ok {
			i := b.RiverIndex(hole, board)
			if err := checkSlot(&river, i, river.Rows()); err != nil {
				return err
			}
			fmt.Fprintf(w, "river     %s\n", formatRow(river.Row(i)))
		}
	}
	return nil
}

func loadTable(cfg *config.BuildConfig, t store.Table) (bool, error) {
	path := cfg.Path(t.Kind())
	if !store.Exists(path) {
		log.Debug().Str("table", t.Kind()).Str("path", path).Msg("table not built")
		return false, nil
	}
	if err := store.Load(path, t); err != nil {
		return false, err
	}
	return true, nil
}

// checkSlot rejects tables built for another deck, whose rows do not line up
// with the builder's indexers.
func checkSlot(t store.Table, i, rows uint64) error {
	if i >= rows {
		return fmt.Errorf("%s table has %d rows, hand needs row %d: rebuild it for this deck", t.Kind(), rows, i)
	}
	return nil
}

func formatRow(h abstraction.Histogram) string {
	parts := make([]string, len(h))
	for i, v := range h {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
