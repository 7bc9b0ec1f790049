package gen

import (
	"go.uber.org/zap"

	"github.com/dungeondredge/layoutd/internal/dungeon"
)

// placeBossRoom converts the room farthest from the portal (by Euclidean
// grid distance) into the boss room. Ties go to the first room encountered
// in placement order, so selection is deterministic for a given layout.
//
// When the portal is the only placed room, a boss room is created at the
// far edge of the grid instead, at (gridWidth/2, gridHeight-1). That cell
// may be disconnected from everything; connectivity repair reconnects it.
// On a one-row grid the far-edge cell is the portal itself and boss
// placement is skipped entirely.
func (g *Generator) placeBossRoom(layout *Layout) {
	if len(layout.Rooms) == 1 {
		fallback := dungeon.Coord{
			X: layout.Params.GridWidth / 2,
			Y: layout.Params.GridHeight - 1,
		}
		if layout.Grid.Occupied(fallback) {
			g.logger.Warn("skipping boss placement: fallback cell occupied by portal",
				zap.Stringer("cell", fallback),
			)
			return
		}
		boss := &dungeon.Room{Coord: fallback, Type: dungeon.RoomBoss}
		layout.Grid.Place(boss)
		layout.Rooms = append(layout.Rooms, boss)
		layout.Boss = fallback
		layout.HasBoss = true
		return
	}

	bestIdx := -1
	bestDist := -1.0
	for i, r := range layout.Rooms {
		if r.Type == dungeon.RoomPortal {
			continue
		}
		if d := r.Coord.DistanceTo(layout.Portal); d > bestDist {
			bestDist = d
			bestIdx = i
		}
	}

	coord := layout.Rooms[bestIdx].Coord
	// Value replacement in the arena: the old room is dropped from both the
	// grid slot and the room list, never mutated in place.
	boss := layout.Grid.Replace(coord, dungeon.RoomBoss)
	layout.Rooms[bestIdx] = boss
	layout.Boss = coord
	layout.HasBoss = true
}
