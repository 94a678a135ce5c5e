// Package main runs headless battles for a batch of new trainers and
// optionally stores the resulting trainers in PostgreSQL.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/pocketbattle/internal/config"
	"github.com/cory-johannsen/pocketbattle/internal/content"
	"github.com/cory-johannsen/pocketbattle/internal/game/combat"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/encounter"
	"github.com/cory-johannsen/pocketbattle/internal/observability"
	"github.com/cory-johannsen/pocketbattle/internal/sim"
	"github.com/cory-johannsen/pocketbattle/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	trainers := flag.Int("trainers", 4, "number of trainers to simulate")
	battles := flag.Int("battles", 10, "battles per trainer")
	maxTurns := flag.Int("max-turns", 50, "turns before a battle is abandoned")
	concurrency := flag.Int("concurrency", 0, "trainers battling at once (0 = all)")
	routeID := flag.String("route", "", "restrict battles to one route ID")
	seed := flag.Uint64("seed", 0, "seed for reproducible runs (0 = crypto/rand)")
	realtime := flag.Bool("realtime", false, "honor configured turn delays")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger("battlesim", cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	bundle, err := content.Load(ctx, cfg.Content.Dir)
	if err != nil {
		logger.Fatal("loading content", zap.String("dir", cfg.Content.Dir), zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("species", len(bundle.Registry.Names())),
		zap.Int("routes", len(bundle.Routes)),
		zap.Int("talents", bundle.Catalog.Len()),
	)

	routes := bundle.Routes
	if *routeID != "" {
		r, ok := bundle.Route(*routeID)
		if !ok {
			logger.Fatal("unknown route", zap.String("route", *routeID), zap.Strings("known", bundle.RouteIDs()))
		}
		routes = []*encounter.Route{r}
	}

	var src dice.Source = dice.NewCryptoSource()
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	}
	deps := combat.Deps{
		Registry: bundle.Registry,
		Catalog:  bundle.Catalog,
		Source:   observability.NewDiceSource(cfg.Logging, src, logger),
		Logger:   logger,
	}
	if *realtime {
		deps.NewPacer = func() combat.Pacer { return combat.NewRealPacer() }
	}

	runner := &sim.Runner{
		Engine: combat.NewEngine(deps, battleConfig(cfg.Battle)),
		Deps:   deps,
		Routes: routes,
		Logger: logger,
	}

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	switch {
	case errors.Is(err, postgres.ErrPersistenceDisabled):
		logger.Info("persistence disabled")
	case err != nil:
		logger.Fatal("connecting to database", zap.Error(err))
	default:
		defer pool.Close()
		runner.Saver = postgres.NewTrainerRepository(pool.DB(), bundle.Registry, bundle.Catalog, cfg.Battle.PartyLimit)
		logger.Info("persistence enabled", zap.String("host", cfg.Database.Host))
	}

	outcomes, err := runner.Run(ctx, sim.Options{
		Trainers:     *trainers,
		Battles:      *battles,
		MaxTurns:     *maxTurns,
		StarterLevel: cfg.Battle.StarterLevel,
		PartyLimit:   cfg.Battle.PartyLimit,
		Concurrency:  *concurrency,
	})
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	var wins, losses, caught, fled int
	for _, o := range outcomes {
		wins += o.Wins
		losses += o.Losses
		caught += o.Caught
		fled += o.Fled
	}
	logger.Info("simulation complete",
		zap.Int("trainers", len(outcomes)),
		zap.Int("wins", wins),
		zap.Int("losses", losses),
		zap.Int("caught", caught),
		zap.Int("fled", fled),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func battleConfig(b config.BattleConfig) combat.Config {
	return combat.Config{
		WildTurnDelay:   b.WildTurnDelay,
		FaintClearDelay: b.FaintClearDelay,
		FleeDelay:       b.FleeDelay,
		LootChance:      b.LootChance,
		Encounter: encounter.Config{
			ShinyChance:    b.ShinyChance,
			DisguiseChance: b.DisguiseChance,
			DisguiseForm:   b.DisguiseForm,
		},
	}
}
