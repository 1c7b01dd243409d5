package leveldata

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 4x3 map of 16px tiles. Row 0 is the top of the map.
const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="16" tileheight="16" infinite="0" nextlayerid="4" nextobjectid="5">
 <tileset firstgid="1" name="blocks" tilewidth="16" tileheight="16" tilecount="3" columns="3">
  <image source="blocks.png" width="48" height="16"/>
  <tile id="1">
   <properties>
    <property name="kind" value="platform"/>
   </properties>
  </tile>
  <tile id="2">
   <properties>
    <property name="kind" value="ladder"/>
   </properties>
  </tile>
 </tileset>
 <layer id="1" name="collision" width="4" height="3">
  <data encoding="csv">
0,0,0,3,
2,2,0,3,
1,1,1,1
</data>
 </layer>
 <objectgroup id="2" name="Movers">
  <object id="1" x="16" y="0" width="32" height="8">
   <properties>
    <property name="duration" type="float" value="1.5"/>
    <property name="dx" type="float" value="0"/>
    <property name="dy" type="float" value="20"/>
   </properties>
  </object>
 </objectgroup>
 <objectgroup id="3" name="Hero">
  <object id="2" name="spawn" x="8" y="32">
   <point/>
  </object>
 </objectgroup>
 <objectgroup id="4" name="Obstacles">
  <object id="3" x="32" y="4" width="8" height="8"/>
 </objectgroup>
</map>
`

const testYAML = `
name: boxes
width: 320
height: 200
hero: {x: 10, y: 16}
solids:
  - {x: 0, y: 0, w: 320, h: 16}
platforms:
  - {x: 40, y: 60, w: 50, h: 6}
movers:
  - {x: 100, y: 40, w: 30, h: 6, dx: 60, dy: 0, duration: 2}
`

func TestLoadTMX(t *testing.T) {
	fsys := fstest.MapFS{"levels/small.tmx": {Data: []byte(testTMX)}}

	layout, err := LoadLayout(fsys, "levels/small.tmx")
	require.NoError(t, err)

	assert.Equal(t, "small", layout.Name)
	assert.Equal(t, 64.0, layout.Width)
	assert.Equal(t, 48.0, layout.Height)

	// Bottom row merges into one solid at the world origin.
	assert.Equal(t, []Rect{{X: 0, Y: 0, W: 64, H: 16}}, layout.Solids)
	assert.Equal(t, []Rect{{X: 0, Y: 16, W: 32, H: 16}}, layout.Platforms)
	// Rows stay separate runs.
	assert.Equal(t, []Rect{
		{X: 48, Y: 32, W: 16, H: 16},
		{X: 48, Y: 16, W: 16, H: 16},
	}, layout.Ladders)

	require.Len(t, layout.Movers, 1)
	assert.Equal(t, MoverPath{Rect: Rect{X: 16, Y: 40, W: 32, H: 8}, DX: 0, DY: 20, Duration: 1.5}, layout.Movers[0])
	assert.Equal(t, []Rect{{X: 32, Y: 36, W: 8, H: 8}}, layout.Obstacles)
	assert.Equal(t, Point{X: 8, Y: 16}, layout.HeroSpawn)
}

func TestLoadYAML(t *testing.T) {
	fsys := fstest.MapFS{"boxes.yml": {Data: []byte(testYAML)}}

	layout, err := LoadLayout(fsys, "boxes.yml")
	require.NoError(t, err)

	assert.Equal(t, "boxes", layout.Name)
	assert.Equal(t, []Rect{{X: 0, Y: 0, W: 320, H: 16}}, layout.Solids)
	assert.Equal(t, Point{X: 10, Y: 16}, layout.HeroSpawn)
	require.Len(t, layout.Movers, 1)
	assert.Equal(t, 60.0, layout.Movers[0].DX)
	assert.Equal(t, 30.0, layout.Movers[0].W)
}

func TestLoadLayoutErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"level.json":  {Data: []byte(`{}`)},
		"flat.yaml":   {Data: []byte("width: 100\nheight: 0\n")},
		"broken.yaml": {Data: []byte("solids: [")},
		"stuck.yaml":  {Data: []byte("width: 10\nheight: 10\nmovers:\n  - {x: 0, y: 0, w: 4, h: 1}\n")},
	}

	_, err := LoadLayout(fsys, "level.json")
	assert.ErrorIs(t, err, ErrUnknownLevelFormat)

	_, err = LoadLayout(fsys, "flat.yaml")
	assert.ErrorIs(t, err, ErrInvalidLayout)

	_, err = LoadLayout(fsys, "broken.yaml")
	assert.ErrorContains(t, err, "parse level broken.yaml")

	_, err = LoadLayout(fsys, "stuck.yaml")
	assert.ErrorIs(t, err, ErrInvalidLayout, "movers need a duration")

	_, err = LoadLayout(fsys, "missing.yaml")
	assert.Error(t, err)
}

func TestValidateRejectsEmptyRects(t *testing.T) {
	l := &Layout{Width: 10, Height: 10, Ladders: []Rect{{X: 1, Y: 1, W: 0, H: 4}}}
	assert.ErrorIs(t, l.Validate(), ErrInvalidLayout)

	l.Ladders[0].W = 2
	assert.NoError(t, l.Validate())
}

func TestLoadAll(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/small.tmx": {Data: []byte(testTMX)},
		"levels/boxes.yml": {Data: []byte(testYAML)},
		"levels/notes.txt": {Data: []byte("ignored")},
	}

	levels, names, err := LoadAll(fsys, "levels")
	require.NoError(t, err)
	assert.Equal(t, []string{"boxes", "small"}, names)
	assert.Len(t, levels, 2)
	assert.Equal(t, 64.0, levels["small"].Width)

	fsys["levels/small.yaml"] = &fstest.MapFile{Data: []byte(testYAML)}
	_, _, err = LoadAll(fsys, "levels")
	assert.ErrorContains(t, err, "defined twice")

	_, _, err = LoadAll(fstest.MapFS{}, "levels")
	assert.ErrorContains(t, err, "no level files")
}
