package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lox/pokertables/internal/config"
)

var cli struct {
	Debug   bool   `help:"enable debug logging"`
	Config  string `help:"path to the build configuration" default:"tables.hcl" type:"path"`
	Out     string `help:"directory holding the tables (overrides the config file)"`
	Workers int    `help:"worker goroutines (0 keeps the config value)" default:"0"`

	Build    BuildCmd    `cmd:"" help:"build missing abstraction tables"`
	Clusters ClustersCmd `cmd:"" help:"manage OCHS cluster assignments"`
	Inspect  InspectCmd  `cmd:"" help:"print the table entries of a hand"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("pokertables"),
		kong.Description("Offline hand strength tables for the solver's card abstraction"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Str("path", cli.Config).Msg("invalid configuration")
	}

	switch kctx.Command() {
	case "build":
		if err := cli.Build.Run(ctx, cfg); err != nil {
			log.Fatal().Err(err).Msg("build failed")
		}
	case "clusters import <text> <out>":
		if err := cli.Clusters.Import.Run(ctx, cfg); err != nil {
			log.Fatal().Err(err).Msg("cluster import failed")
		}
	case "inspect":
		if err := cli.Inspect.Run(ctx, cfg); err != nil {
			log.Fatal().Err(err).Msg("inspect failed")
		}
	default:
		log.Fatal().Msgf("unknown command: %s", kctx.Command())
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig() (*config.BuildConfig, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if cli.Out != "" {
		cfg.Output = cli.Out
	}
	if cli.Workers > 0 {
		cfg.Workers = cli.Workers
	}
	log.Debug().
		Str("output", cfg.Output).
		Int("ranks", cfg.Ranks).
		Int("buckets", cfg.Buckets).
		Int("workers", cfg.Workers).
		Strs("tables", cfg.Tables).
		Msg("configuration loaded")
	return cfg, nil
}
