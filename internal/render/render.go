// Package render draws ASCII previews of generated layouts for the CLI and
// logs. It is a development aid, not the engine-side realization of a layout.
package render

import (
	"strings"

	"github.com/gookit/color"

	"github.com/dungeondredge/layoutd/internal/dungeon"
	"github.com/dungeondredge/layoutd/internal/dungeon/gen"
)

// Room glyph styles, one per room type.
var (
	stylePortal = color.Style{color.FgCyan, color.OpBold}
	styleBoss   = color.Style{color.FgRed, color.OpBold}
	styleLoot   = color.Style{color.FgYellow}
	styleEnemy  = color.Style{color.FgMagenta}
	styleEmpty  = color.Style{color.FgGray}
)

// Renderer draws layouts as character grids. The zero value renders without
// color.
type Renderer struct {
	// Color enables ANSI color on room glyphs.
	Color bool
}

// roomGlyph returns the single-character marker for a room type.
func roomGlyph(t dungeon.RoomType) (string, color.Style) {
	switch t {
	case dungeon.RoomPortal:
		return "P", stylePortal
	case dungeon.RoomBoss:
		return "B", styleBoss
	case dungeon.RoomLoot:
		return "L", styleLoot
	case dungeon.RoomEnemy:
		return "E", styleEnemy
	default:
		return ".", styleEmpty
	}
}

// CorridorGlyph returns the box-drawing character for a room's corridor
// descriptor. Total over every descriptor ClassifyCorridor can produce.
func CorridorGlyph(desc dungeon.CorridorDescriptor) string {
	switch desc.Type {
	case dungeon.CorridorCrossroads:
		return "┼"
	case dungeon.CorridorTJunction:
		switch desc.Rotation {
		case 0: // closed north
			return "┬"
		case 90: // closed east
			return "┤"
		case 180: // closed south
			return "┴"
		default: // closed west
			return "├"
		}
	case dungeon.CorridorCorner:
		switch desc.Rotation {
		case 0: // north+east
			return "└"
		case 90: // east+south
			return "┌"
		case 180: // south+west
			return "┐"
		default: // west+north
			return "┘"
		}
	default:
		if desc.Rotation == 90 {
			return "─"
		}
		return "│"
	}
}

// Layout renders the layout as a character grid with north at the top.
// Room cells show their type glyph; door connections show as "-" and "|".
//
// Postcondition: the output has 2*gridHeight-1 lines.
func (r Renderer) Layout(layout *gen.Layout) string {
	width := layout.Grid.Width()
	height := layout.Grid.Height()

	var b strings.Builder
	for y := height - 1; y >= 0; y-- {
		// Room row.
		for x := 0; x < width; x++ {
			room := layout.Grid.At(dungeon.Coord{X: x, Y: y})
			if room == nil {
				b.WriteString(" ")
			} else {
				glyph, style := roomGlyph(room.Type)
				if r.Color {
					glyph = style.Sprint(glyph)
				}
				b.WriteString(glyph)
			}
			if x < width-1 {
				if room != nil && room.ConnectedTo(dungeon.East) {
					b.WriteString("-")
				} else {
					b.WriteString(" ")
				}
			}
		}
		b.WriteString("\n")

		// Connector row toward the next (southern) room row.
		if y > 0 {
			for x := 0; x < width; x++ {
				room := layout.Grid.At(dungeon.Coord{X: x, Y: y})
				if room != nil && room.ConnectedTo(dungeon.South) {
					b.WriteString("|")
				} else {
					b.WriteString(" ")
				}
				if x < width-1 {
					b.WriteString(" ")
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Corridors renders each room as its corridor box-drawing glyph, north at
// the top. Empty cells render as spaces.
func (r Renderer) Corridors(layout *gen.Layout) string {
	width := layout.Grid.Width()
	height := layout.Grid.Height()

	var b strings.Builder
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			room := layout.Grid.At(dungeon.Coord{X: x, Y: y})
			if room == nil {
				b.WriteString(" ")
				continue
			}
			b.WriteString(CorridorGlyph(dungeon.ClassifyCorridor(room.Doors)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
