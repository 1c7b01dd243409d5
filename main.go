package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/automoto/quadplat/assets"
	"github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/scenes"
	"github.com/automoto/quadplat/shared/logging"
	"github.com/automoto/quadplat/shared/profiling"
	"github.com/automoto/quadplat/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(loader *assets.LevelLoader, levelIndex int) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}
	g.scene = scenes.NewPlatformerScene(g, loader, levelIndex)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Window.Width, config.C.Window.Height)
	return config.C.Window.Width, config.C.Window.Height
}

func main() {
	configPath := flag.String("config", "", "path to a .toml or .yaml config file")
	level := flag.String("level", "", "level name to start on (default: last played)")
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
	systems.SetLogger(log)

	prof, err := profiling.Start(*profileMode, ".")
	if err != nil {
		log.Fatal("profiling", zap.Error(err))
	}
	defer prof.Stop()

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence("quadplat"); err != nil {
		log.Warn("could not initialize persistence", zap.Error(err))
	}
	saved, _ := systems.LoadSettings()

	loader := assets.NewLevelLoader()
	levelIndex, err := startLevel(loader, *level, saved)
	if err != nil {
		log.Fatal("levels", zap.Error(err))
	}

	ebiten.SetWindowTitle(config.C.Window.Title)
	ebiten.SetTPS(config.C.Window.TPS)
	res := config.Settings.ResolutionAt(config.Settings.DefaultResolutionIndex)
	ebiten.SetWindowSize(res.Width, res.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)
	systems.ApplySavedWindow(saved)

	if err := ebiten.RunGame(NewGame(loader, levelIndex)); err != nil {
		log.Error("game exited", zap.Error(err))
	}
}

// startLevel picks the named level, or the last played one.
func startLevel(loader *assets.LevelLoader, name string, saved *systems.SavedSettings) (int, error) {
	names, err := loader.Names()
	if err != nil {
		return 0, err
	}
	if name == "" {
		if saved != nil {
			return saved.LevelIndex, nil
		}
		return 0, nil
	}
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q, have %v", name, names)
}
