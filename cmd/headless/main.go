// Command headless runs a level without a window, driving the hero from an
// input script, and reports what happened.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/automoto/quadplat/assets"
	"github.com/automoto/quadplat/components"
	"github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/entities"
	"github.com/automoto/quadplat/shared/logging"
	"github.com/automoto/quadplat/shared/profiling"
	"github.com/automoto/quadplat/sim"
	"github.com/automoto/quadplat/world"
	"go.uber.org/zap"
)

// spriteCounter counts what a frame would draw.
type spriteCounter map[entities.Kind]int

func (c spriteCounter) Draw(sp entities.Sprite) { c[sp.Kind]++ }

func main() {
	configPath := flag.String("config", "", "path to a .toml or .yaml config file")
	levelName := flag.String("level", "intro", "level to run")
	frames := flag.Int("frames", 0, "frames to run (default: script length, or 600)")
	script := flag.String("script", "right:90,right+jump:1,right:60,none:60,left:45", "input script, action+action:frames,...")
	realtime := flag.Bool("realtime", false, "tick at the configured rate instead of as fast as possible")
	report := flag.Int("report", 60, "log progress every n frames (0 disables)")
	profileMode := flag.String("profile", "", "profile mode: cpu, mem, allocs or trace")
	flag.Parse()

	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		config.C = c
	}
	log, err := logging.New(config.C.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(log, *levelName, *script, *frames, *report, *realtime, *profileMode); err != nil {
		log.Error("headless run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(log *zap.Logger, levelName, scriptSrc string, frames, report int, realtime bool, profileMode string) error {
	script, err := sim.ParseScript(scriptSrc)
	if err != nil {
		return err
	}
	if frames <= 0 {
		frames = script.Len()
	}
	if frames <= 0 {
		frames = 600
	}

	layout, err := assets.NewLevelLoader().Level(levelName)
	if err != nil {
		return err
	}

	var (
		input    components.InputData
		hero     *entities.Hero
		respawns int
	)
	w, hero, err := world.FromLayout(layout, assets.FS(), &input, config.C.Hero,
		world.WithLogger(log.Named("world")),
		world.WithQuadtree(config.C.Quadtree),
		world.WithPhysics(config.C.Physics),
		world.WithEscapeHandler(func(d entities.DynamicEntity) bool {
			if d != hero {
				return false
			}
			respawns++
			return hero.Teleport(layout.HeroSpawn.X, layout.HeroSpawn.Y)
		}),
	)
	if err != nil {
		return err
	}

	prof, err := profiling.Start(profileMode, ".")
	if err != nil {
		return err
	}
	defer prof.Stop()

	loop := sim.NewGameLoop(w, config.C.Window.TPS, log.Named("loop"))
	loop.BeforeTick(func(frame uint64) {
		script.Apply(frame, &input)
		if report > 0 && frame%uint64(report) == 0 {
			log.Info("progress",
				zap.Uint64("frame", frame),
				zap.Stringer("state", hero.State()),
				zap.Float64("x", hero.Box().X()),
				zap.Float64("y", hero.Box().Y()),
				zap.Int("dynamics", len(w.Dynamics())),
			)
		}
		if frame >= uint64(frames) {
			loop.Stop()
		}
	})

	log.Info("running",
		zap.String("level", layout.Name),
		zap.Int("frames", frames),
		zap.Bool("realtime", realtime),
	)
	if realtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		loop.Run(ctx)
	} else {
		loop.RunFrames(frames)
	}

	sprites := spriteCounter{}
	w.Render(sprites)
	stats := loop.Stats()
	fields := []zap.Field{
		zap.Uint64("frames", stats.Frames),
		zap.Duration("busy", stats.Busy),
		zap.Duration("max_tick", stats.MaxTick),
		zap.Stringer("hero_state", hero.State()),
		zap.Float64("hero_x", hero.Box().X()),
		zap.Float64("hero_y", hero.Box().Y()),
		zap.Int("respawns", respawns),
		zap.Int("statics", len(w.Statics())),
		zap.Int("dynamics", len(w.Dynamics())),
		zap.Int("nodes", w.Quadtree().NodeCount()),
	}
	for kind, n := range sprites {
		fields = append(fields, zap.Int("sprites_"+kind.String(), n))
	}
	log.Info("done", fields...)
	return nil
}
