package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeondredge/layoutd/internal/dungeon"
	"github.com/dungeondredge/layoutd/internal/dungeon/gen"
	"github.com/dungeondredge/layoutd/internal/render"
)

func generate(t *testing.T) *gen.Layout {
	t.Helper()
	g, err := gen.NewGenerator(gen.Params{
		GridWidth: 5, GridHeight: 5, MinRooms: 8, MaxRooms: 8, Seed: 42,
	}, nil)
	require.NoError(t, err)
	layout, err := g.Generate()
	require.NoError(t, err)
	return layout
}

func TestRenderer_Layout_Shape(t *testing.T) {
	layout := generate(t)
	out := render.Renderer{}.Layout(layout)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2*layout.Grid.Height()-1)

	assert.Equal(t, 1, strings.Count(out, "P"), "exactly one portal glyph")
	assert.Equal(t, 1, strings.Count(out, "B"), "exactly one boss glyph")
}

func TestRenderer_Layout_PortalAtBottomRow(t *testing.T) {
	layout := generate(t)
	out := render.Renderer{}.Layout(layout)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// North renders at the top, so the portal row (y=0) is the last line.
	assert.Contains(t, lines[len(lines)-1], "P")
}

func TestRenderer_Layout_Deterministic(t *testing.T) {
	layout := generate(t)
	r := render.Renderer{}
	assert.Equal(t, r.Layout(layout), r.Layout(layout))
}

func TestCorridorGlyph_TotalOverAllMasks(t *testing.T) {
	seen := map[string]bool{}
	for m := dungeon.Mask(0); m <= dungeon.MaskAll; m++ {
		glyph := render.CorridorGlyph(dungeon.ClassifyCorridor(m))
		require.NotEmpty(t, glyph, "mask %04b", m)
		seen[glyph] = true
	}
	// The nine distinct corridor shapes: 2 straights, 4 corners,
	// 4 tees, 1 cross — minus overlaps from dead-end stubs.
	assert.True(t, seen["┼"])
	assert.True(t, seen["│"])
	assert.True(t, seen["─"])
}

func TestRenderer_Corridors_Shape(t *testing.T) {
	layout := generate(t)
	out := render.Renderer{}.Corridors(layout)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, layout.Grid.Height())
}
