package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lox/pokertables/abstraction"
	"github.com/lox/pokertables/internal/config"
	"github.com/lox/pokertables/internal/store"
)

type ClustersCmd struct {
	Import ImportCmd `cmd:"" help:"convert a text cluster assignment into a clusters table"`
}

type ImportCmd struct {
	Text string `arg:"" help:"whitespace separated cluster ids, one per hole class" type:"existingfile"`
	Out  string `arg:"" help:"path of the clusters table to write" type:"path"`
}

func (cmd *ImportCmd) Run(_ context.Context, cfg *config.BuildConfig) error {
	clusters, err := loadClusters(cmd.Text)
	if err != nil {
		return err
	}

	deck, err := cfg.Deck()
	if err != nil {
		return err
	}
	hole, err := abstraction.IsomorphIndexer(deck, 2)
	if err != nil {
		return err
	}
	if err := clusters.Validate(hole.Count(0)); err != nil {
		return fmt.Errorf("%s: %w", cmd.Text, err)
	}

	if err := store.Save(cmd.Out, clusters); err != nil {
		return err
	}
	log.Info().
		Str("path", cmd.Out).
		Int("clusters", clusters.K()).
		Int("hole_classes", len(clusters.Assignment)).
		Msg("clusters imported")
	return nil
}
