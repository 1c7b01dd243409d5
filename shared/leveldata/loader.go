package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
	"gopkg.in/yaml.v3"
)

var ErrUnknownLevelFormat = errors.New("unknown level format")

// Object group names read from TMX files.
const (
	groupSolids    = "Solids"
	groupPlatforms = "Platforms"
	groupLadders   = "Ladders"
	groupObstacles = "Obstacles"
	groupMovers    = "Movers"
	groupHero      = "Hero"

	// Tile layer whose tiles become solids (or platforms/ladders through the
	// tileset tile "kind" property).
	layerTiles = "collision"
)

// LoadLayout loads a .tmx or .yaml/.yml level from fsys.
func LoadLayout(fsys fs.FS, levelPath string) (*Layout, error) {
	var (
		layout *Layout
		err    error
	)
	switch ext := strings.ToLower(path.Ext(levelPath)); ext {
	case ".tmx":
		layout, err = LoadTMX(fsys, levelPath)
	case ".yaml", ".yml":
		layout, err = LoadYAML(fsys, levelPath)
	default:
		return nil, fmt.Errorf("%s: %w %q", levelPath, ErrUnknownLevelFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if layout.Name == "" {
		layout.Name = stem(levelPath)
	}
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", levelPath, err)
	}
	return layout, nil
}

// LoadYAML decodes a layout written directly in world coordinates.
func LoadYAML(fsys fs.FS, levelPath string) (*Layout, error) {
	data, err := fs.ReadFile(fsys, levelPath)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", levelPath, err)
	}
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse level %s: %w", levelPath, err)
	}
	return &layout, nil
}

// LoadTMX parses a Tiled map. Tiled puts the origin at the top-left with y
// pointing down, so every rect is flipped into world coordinates.
func LoadTMX(fsys fs.FS, tmxPath string) (*Layout, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	mapH := float64(levelMap.Height * levelMap.TileHeight)
	layout := &Layout{
		Width:  float64(levelMap.Width * levelMap.TileWidth),
		Height: mapH,
	}
	flip := func(x, y, w, h float64) Rect {
		return Rect{X: x, Y: mapH - y - h, W: w, H: h}
	}

	for _, og := range levelMap.ObjectGroups {
		for _, o := range og.Objects {
			r := flip(o.X, o.Y, o.Width, o.Height)
			switch og.Name {
			case groupSolids:
				layout.Solids = append(layout.Solids, r)
			case groupPlatforms:
				layout.Platforms = append(layout.Platforms, r)
			case groupLadders:
				layout.Ladders = append(layout.Ladders, r)
			case groupObstacles:
				layout.Obstacles = append(layout.Obstacles, r)
			case groupMovers:
				layout.Movers = append(layout.Movers, MoverPath{
					Rect:     r,
					DX:       o.Properties.GetFloat("dx"),
					DY:       o.Properties.GetFloat("dy"),
					Duration: o.Properties.GetFloat("duration"),
				})
			case groupHero:
				// Point objects have no size; the spawn is the bottom-left
				// of the hero, so a point marks where its feet go.
				layout.HeroSpawn = Point{X: r.X, Y: r.Y}
			}
		}
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	for _, layer := range levelMap.Layers {
		if layer.Name != layerTiles {
			continue
		}
		// Adjacent tiles of the same kind on a row merge into one rect.
		for y := 0; y < levelMap.Height; y++ {
			runStart, runKind := -1, ""
			flush := func(end int) {
				if runStart < 0 {
					return
				}
				r := flip(float64(runStart)*tileW, float64(y)*tileH, float64(end-runStart)*tileW, tileH)
				switch runKind {
				case "platform":
					layout.Platforms = append(layout.Platforms, r)
				case "ladder":
					layout.Ladders = append(layout.Ladders, r)
				default:
					layout.Solids = append(layout.Solids, r)
				}
				runStart = -1
			}
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					flush(x)
					continue
				}
				var kind string
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					kind = tilesetTile.Properties.GetString("kind")
				}
				if runStart >= 0 && kind != runKind {
					flush(x)
				}
				if runStart < 0 {
					runStart, runKind = x, kind
				}
			}
			flush(levelMap.Width)
		}
		break
	}

	return layout, nil
}

// LoadAll discovers every level file in levelsDir within fsys and returns
// the layouts keyed by stem name plus the sorted names.
func LoadAll(fsys fs.FS, levelsDir string) (map[string]*Layout, []string, error) {
	var matches []string
	for _, ext := range []string{"tmx", "yaml", "yml"} {
		pattern := levelsDir + "/*." + ext
		m, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		matches = append(matches, m...)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no level files found in %s", levelsDir)
	}

	levels := make(map[string]*Layout, len(matches))
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		layout, err := LoadLayout(fsys, p)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", p, err)
		}
		name := stem(p)
		if _, dup := levels[name]; dup {
			return nil, nil, fmt.Errorf("level %s defined twice", name)
		}
		levels[name] = layout
		names = append(names, name)
	}

	sort.Strings(names)
	return levels, names, nil
}

func stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
