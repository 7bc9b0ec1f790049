package gen

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/dungeondredge/layoutd/internal/dungeon"
)

// connectRooms builds the connection graph in three phases: open a door
// pair between every grid-adjacent occupied pair, find rooms the portal
// cannot reach, and carve taxicab repair paths to reconnect them.
//
// Postcondition: a BFS from the portal visits every room in the list.
func (g *Generator) connectRooms(layout *Layout) {
	grid := layout.Grid

	// Phase 1: local adjacency. Checking only North and East per room covers
	// every adjacent pair exactly once.
	for _, room := range layout.Rooms {
		for _, d := range []dungeon.Direction{dungeon.North, dungeon.East} {
			if neighbor := grid.At(room.Coord.Step(d)); neighbor != nil {
				room.Open(d)
				neighbor.Open(d.Opposite())
			}
		}
	}

	// Phase 2: reachability from the portal.
	reached := reachableFrom(grid, layout.Portal)

	// Phase 3: repair. Earlier repairs can reconnect later defects, so each
	// candidate is re-checked against the growing reached set.
	for _, room := range layout.Rooms {
		if reached.Has(room.Coord) {
			continue
		}
		g.repairReachability(layout, room, reached)
		layout.RepairedRooms++
	}
}

// repairReachability carves a grid-aligned path from the defect room toward
// the nearest reached room, creating Empty rooms on unoccupied cells and
// opening a door pair at every step, until the path lands on an
// already-reached cell. The whole path then joins the reached set.
//
// A single room's repair exceeding gridWidth+gridHeight steps means the walk
// is not converging, which is a logic-invariant violation, not a runtime
// condition: it panics.
func (g *Generator) repairReachability(layout *Layout, defect *dungeon.Room, reached mapset.Set[dungeon.Coord]) {
	grid := layout.Grid
	target := g.nearestReached(layout, defect, reached)

	g.logger.Debug("repairing reachability defect",
		zap.Stringer("defect", defect.Coord),
		zap.Stringer("target", target),
	)

	cur := defect.Coord
	path := []dungeon.Coord{cur}
	steps := 0
	maxSteps := layout.Params.MaxRepairSteps()

	for !reached.Has(cur) {
		steps++
		if steps > maxSteps {
			panic(fmt.Sprintf("gen: reachability repair for %s exceeded %d steps toward %s",
				defect.Coord, maxSteps, target))
		}

		next := stepToward(cur, target)
		if !grid.Occupied(next) {
			room := &dungeon.Room{Coord: next, Type: dungeon.RoomEmpty}
			grid.Place(room)
			layout.Rooms = append(layout.Rooms, room)
		}
		grid.At(cur).Open(directionBetween(cur, next))
		grid.At(next).Open(directionBetween(next, cur))

		cur = next
		path = append(path, cur)
	}

	for _, c := range path {
		reached.Put(c)
	}
}

// nearestReached returns the coordinate of the reached room closest to the
// defect by Euclidean grid distance. Ties go to the first room in list
// order, keeping repair deterministic.
func (g *Generator) nearestReached(layout *Layout, defect *dungeon.Room, reached mapset.Set[dungeon.Coord]) dungeon.Coord {
	best := layout.Portal
	bestDist := defect.Coord.DistanceTo(layout.Portal)
	for _, r := range layout.Rooms {
		if !reached.Has(r.Coord) {
			continue
		}
		if d := defect.Coord.DistanceTo(r.Coord); d < bestDist {
			bestDist = d
			best = r.Coord
		}
	}
	return best
}

// stepToward returns the cell one taxicab step from cur toward target,
// closing the larger axis delta first; x wins ties.
//
// Precondition: cur != target.
func stepToward(cur, target dungeon.Coord) dungeon.Coord {
	dx := target.X - cur.X
	dy := target.Y - cur.Y
	if dx == 0 && dy == 0 {
		panic("gen: stepToward called with cur == target")
	}
	if absInt(dx) >= absInt(dy) && dx != 0 {
		if dx > 0 {
			return cur.Step(dungeon.East)
		}
		return cur.Step(dungeon.West)
	}
	if dy > 0 {
		return cur.Step(dungeon.North)
	}
	return cur.Step(dungeon.South)
}

// directionBetween returns the direction from a to its grid-adjacent
// neighbor b.
//
// Precondition: a and b must be exactly one cardinal step apart.
func directionBetween(a, b dungeon.Coord) dungeon.Direction {
	for _, d := range dungeon.Directions {
		if a.Step(d) == b {
			return d
		}
	}
	panic(fmt.Sprintf("gen: directionBetween called with non-adjacent cells %s and %s", a, b))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
