package main

import (
	"flag"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/simulation"
)

// app drives a Flock from the terminal, without the actor system.
type app struct {
	flock        *flock.Flock
	picker       *rand.Rand // 'r' destinations, apart from the flock's stream
	view         *view
	destinations geometry.Box
	useIndex     bool
	paused       bool
	stepOnce     bool
}

// handleKey applies one key press and reports whether the program must quit.
func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return a.command(ev.Rune())
	}
	return false
}

func (a *app) command(r rune) bool {
	switch r {
	case 'q':
		return true
	case 'o':
		a.useIndex = !a.useIndex
	case 't':
		a.view.showOctree = !a.view.showOctree
	case ' ':
		a.paused = !a.paused
	case 'n':
		a.stepOnce = true
	case 'r':
		b := a.destinations
		a.flock.SetDestination(b.At(a.picker.Float64(), a.picker.Float64(), a.picker.Float64()))
	}
	return false
}

// tick advances the flock unless paused.
func (a *app) tick() {
	if a.paused && !a.stepOnce {
		return
	}
	a.stepOnce = false
	a.flock.Update(a.useIndex)
}

func main() {
	configFile := flag.String("config", "", "flock configuration, .json or .toml")
	seed := flag.Uint64("seed", 0, "random seed, overrides the configuration when not 0")
	logFile := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

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

	// the terminal belongs to tcell, logs go to a file or nowhere
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if *logFile != "" {
		out, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()
		logger.SetOutput(out)
		logger.SetLevel(logrus.DebugLevel)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	a := &app{
		flock:        flock.New(cfg.Settings(), rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)), logger),
		picker:       rand.New(rand.NewPCG(cfg.Seed^0x5bd1e995, cfg.Seed)),
		view:         &view{screen: screen, region: cfg.Region, showOctree: cfg.ShowOctree},
		destinations: cfg.DestinationBounds,
		useIndex:     cfg.UseSpatialIndex,
	}
	logger.WithField("seed", cfg.Seed).Info("terminal viewer started")

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(max(cfg.TickRate, 1)))
	defer ticker.Stop()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			a.tick()
			a.view.draw(a.flock, a.useIndex, a.paused)
		}
	}
}
