// Package main runs a batch of simulated matches between two decks and prints
// the outcome.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stonesim/internal/config"
	"github.com/cory-johannsen/stonesim/internal/game/card"
	"github.com/cory-johannsen/stonesim/internal/observability"
	"github.com/cory-johannsen/stonesim/internal/sim"
	"github.com/cory-johannsen/stonesim/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	matches := flag.Int("matches", 0, "override simulation.matches (0 = use config)")
	seed := flag.Uint64("seed", 0, "override simulation.seed (0 = use config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *matches > 0 {
		cfg.Simulation.Matches = *matches
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	contentStart := time.Now()
	reg, err := card.LoadDirectory(cfg.Content.CardsDir)
	if err != nil {
		logger.Fatal("loading cards", zap.Error(err))
	}
	defs, err := sim.LoadDeckDefs(cfg.Content.DecksFile)
	if err != nil {
		logger.Fatal("loading decks", zap.Error(err))
	}
	var decks [2]sim.Deck
	for i, name := range cfg.Content.Decks {
		if decks[i], err = sim.ResolveDeck(name, defs, reg); err != nil {
			logger.Fatal("resolving deck", zap.String("deck", name), zap.Error(err))
		}
	}
	logger.Info("content loaded",
		zap.Int("cards", reg.Len()),
		zap.Int("decks", len(defs)),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	var store sim.ResultStore
	if cfg.Simulation.Persist {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		if err := pool.Health(ctx, postgres.DefaultHealthTimeout); err != nil {
			logger.Fatal("database health check", zap.Error(err))
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		store = postgres.NewResultRepository(pool.DB())
	}

	logger.Info("starting simulation",
		zap.Strings("decks", cfg.Content.Decks),
		zap.Int("matches", cfg.Simulation.Matches),
		zap.Int("workers", cfg.Simulation.Workers),
		zap.Uint64("seed", cfg.Simulation.Seed),
	)

	runner := sim.NewRunner(decks[0], decks[1], cfg.Simulation, logger, store)
	summary, err := runner.Run(ctx, func(r sim.Result) {
		logger.Debug("match result",
			zap.String("match_id", r.MatchID),
			zap.String("winner", r.WinnerName()),
			zap.Int("turns", r.Turns),
		)
	})
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	fmt.Fprintf(os.Stdout, "%s vs %s: %d matches [%s]\n",
		decks[0].Name, decks[1].Name, summary.Matches, time.Since(start))
	for i, d := range decks {
		fmt.Fprintf(os.Stdout, "  %-12s %5d wins (%5.1f%%)\n", d.Name, summary.Wins[i], 100*summary.WinRate(i))
	}
	fmt.Fprintf(os.Stdout, "  %-12s %5d\n", "draws", summary.Draws)
	fmt.Fprintf(os.Stdout, "  %-12s %5.1f\n", "avg turns", summary.AverageTurns())
}
