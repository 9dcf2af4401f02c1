package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/simulation"
)

func main() {
	configFile := flag.String("config", "", "flock configuration, .json or .toml")
	seed := flag.Uint64("seed", 0, "random seed, overrides the configuration when not 0")
	verbose := flag.Bool("v", false, "log actor and flock details")
	flag.Parse()

	ctx := context.Background()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			log.Fatal(err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	logger := logrus.New()
	var actorLogger golog.Logger = golog.DiscardLogger
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
		actorLogger = golog.DefaultLogger
	}
	logger.WithField("seed", cfg.Seed).Info("starting flock viewer")

	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(actorLogger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		log.Fatal(err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = system.Stop(ctx) }()

	game, err := simulation.NewGame(ctx, cfg, cfg.Seed, system, logger)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("Flock: leader pursuit with octree separation")
	ebiten.SetTPS(cfg.TickRate)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
