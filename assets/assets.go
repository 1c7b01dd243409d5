package assets

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/automoto/quadplat/shared/leveldata"
)

const levelsDir = "levels"

//go:embed all:levels
var assetFS embed.FS

// FS exposes the embedded asset tree.
func FS() fs.FS { return assetFS }

// LevelLoader loads the embedded levels once and serves them by name or by
// position in name order.
type LevelLoader struct {
	fsys   fs.FS
	levels map[string]*leveldata.Layout
	names  []string
}

func NewLevelLoader() *LevelLoader {
	return NewLevelLoaderFS(assetFS)
}

// NewLevelLoaderFS reads levels from a levels/ directory in fsys.
func NewLevelLoaderFS(fsys fs.FS) *LevelLoader {
	return &LevelLoader{fsys: fsys}
}

func (l *LevelLoader) load() error {
	if l.levels != nil {
		return nil
	}
	levels, names, err := leveldata.LoadAll(l.fsys, levelsDir)
	if err != nil {
		return err
	}
	l.levels, l.names = levels, names
	return nil
}

// Names returns the level names in load order.
func (l *LevelLoader) Names() ([]string, error) {
	if err := l.load(); err != nil {
		return nil, err
	}
	return l.names, nil
}

// Level returns a level by name.
func (l *LevelLoader) Level(name string) (*leveldata.Layout, error) {
	if err := l.load(); err != nil {
		return nil, err
	}
	layout, ok := l.levels[name]
	if !ok {
		return nil, fmt.Errorf("level %q not found", name)
	}
	return layout, nil
}

// LevelAt returns the level at index i, wrapping around.
func (l *LevelLoader) LevelAt(i int) (*leveldata.Layout, error) {
	if err := l.load(); err != nil {
		return nil, err
	}
	n := len(l.names)
	i = ((i % n) + n) % n
	return l.levels[l.names[i]], nil
}

func (l *LevelLoader) MustLoadLevels() []*leveldata.Layout {
	if err := l.load(); err != nil {
		panic(fmt.Sprintf("Failed to load levels: %v", err))
	}
	levels := make([]*leveldata.Layout, 0, len(l.names))
	for _, name := range l.names {
		levels = append(levels, l.levels[name])
	}
	return levels
}

func (l *LevelLoader) MustLoadLevel(name string) *leveldata.Layout {
	layout, err := l.Level(name)
	if err != nil {
		panic(err)
	}
	return layout
}
