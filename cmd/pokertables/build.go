package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lox/pokertables/abstraction"
	"github.com/lox/pokertables/internal/config"
	"github.com/lox/pokertables/internal/store"
	"github.com/lox/pokertables/poker"
)

type BuildCmd struct {
	Only []string `help:"comma separated tables to build (strength,flop,turn,ochs,river)" placeholder:"KIND"`
}

func (cmd *BuildCmd) Run(ctx context.Context, cfg *config.BuildConfig) error {
	if len(cmd.Only) > 0 {
		cfg.Tables = cmd.Only
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	b, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	start := time.Now()

	needStrengths := cfg.Wants(abstraction.KindStrength) ||
		cfg.Wants(abstraction.KindFlop) ||
		cfg.Wants(abstraction.KindTurn) ||
		cfg.Wants(abstraction.KindOCHS)

	var strengths *abstraction.StrengthTable
	if needStrengths {
		strengths, err = store.GetOrCompute(ctx, cfg.Path(abstraction.KindStrength), b.Strengths)
		if err != nil {
			return err
		}
	}

	if cfg.Wants(abstraction.KindFlop) {
		_, err := store.GetOrCompute(ctx, cfg.Path(abstraction.KindFlop), func(ctx context.Context) (*abstraction.FlopTable, error) {
			return b.FlopHistograms(ctx, strengths)
		})
		if err != nil {
			return err
		}
	}

	if cfg.Wants(abstraction.KindTurn) {
		_, err := store.GetOrCompute(ctx, cfg.Path(abstraction.KindTurn), func(ctx context.Context) (*abstraction.TurnTable, error) {
			return b.TurnHistograms(ctx, strengths)
		})
		if err != nil {
			return err
		}
	}

	if cfg.Wants(abstraction.KindOCHS) {
		_, err := store.GetOrCompute(ctx, cfg.Path(abstraction.KindOCHS), func(ctx context.Context) (*abstraction.OCHSTable, error) {
			return b.OCHSHistograms(ctx, strengths)
		})
		if err != nil {
			return err
		}
	}

	if cfg.Wants(abstraction.KindRiver) {
		clusters, err := loadClusters(cfg.OCHS.Assignment)
		if err != nil {
			return err
		}
		_, err = store.GetOrCompute(ctx, cfg.Path(abstraction.KindRiver), func(ctx context.Context) (*abstraction.RiverTable, error) {
			return b.RiverHistograms(ctx, clusters)
		})
		if err != nil {
			return err
		}
	}

	log.Info().
		Strs("tables", cfg.Tables).
		Str("output", cfg.Output).
		Dur("elapsed", time.Since(start)).
		Msg("build complete")
	return nil
}

func newBuilder(cfg *config.BuildConfig) (*abstraction.Builder, error) {
	deck, err := cfg.Deck()
	if err != nil {
		return nil, err
	}
	acfg, err := cfg.Abstraction()
	if err != nil {
		return nil, err
	}
	return abstraction.NewBuilder(poker.NewEvaluator(), deck, acfg, abstraction.WithLogger(log.Logger))
}

// loadClusters reads a clusters table, falling back to the plain text format.
func loadClusters(path string) (*abstraction.Clusters, error) {
	_, err := store.ReadHeader(path)
	switch {
	case err == nil:
		var c abstraction.Clusters
		if err := store.Load(path, &c); err != nil {
			return nil, err
		}
		return &c, nil
	case !errors.Is(err, store.ErrMagic):
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := abstraction.ParseClusters(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}
