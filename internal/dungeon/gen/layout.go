package gen

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/dungeondredge/layoutd/internal/dungeon"
)

// Layout is the result of one generation run: the populated grid, the room
// list in placement order, and run diagnostics. A Layout is immutable once
// returned; consumers realize it into engine assets elsewhere.
type Layout struct {
	// Seed is the resolved seed the run actually used (never zero).
	Seed int64
	// Params are the inputs the layout was generated from, with Seed resolved.
	Params Params
	// Grid is the populated room arena.
	Grid *dungeon.Grid
	// Rooms lists every placed room in placement order. Repair-created rooms
	// come after all placer-created rooms.
	Rooms []*dungeon.Room
	// Portal is the coordinate of the single portal room.
	Portal dungeon.Coord
	// Boss is the coordinate of the boss room. HasBoss is false only in the
	// degenerate case where no cell could hold one.
	Boss    dungeon.Coord
	HasBoss bool
	// Incomplete is set when the placer stopped before reaching the target
	// room count (safety cap or exhausted frontier). Partial layouts are
	// valid; callers decide whether a sparse dungeon is acceptable.
	Incomplete bool
	// Iterations is the number of placement loop iterations consumed.
	Iterations int
	// RepairedRooms counts rooms that needed a connectivity repair path.
	RepairedRooms int
}

// RoomAt returns the room at c, or nil if the cell is empty.
func (l *Layout) RoomAt(c dungeon.Coord) *dungeon.Room {
	return l.Grid.At(c)
}

// Reachable returns the set of coordinates reachable from the portal room
// by BFS over the connection graph.
func (l *Layout) Reachable() mapset.Set[dungeon.Coord] {
	return reachableFrom(l.Grid, l.Portal)
}

// FullyConnected reports whether every room in the list is reachable from
// the portal. This is the connectivity builder's terminal postcondition.
func (l *Layout) FullyConnected() bool {
	reached := l.Reachable()
	for _, r := range l.Rooms {
		if !reached.Has(r.Coord) {
			return false
		}
	}
	return true
}

// reachableFrom runs a BFS from start over door connections and returns the
// visited coordinate set. Only membership is ever read from the set, so its
// unordered iteration cannot leak nondeterminism into a run.
func reachableFrom(grid *dungeon.Grid, start dungeon.Coord) mapset.Set[dungeon.Coord] {
	reached := mapset.New[dungeon.Coord]()
	if !grid.Occupied(start) {
		return reached
	}
	reached.Put(start)
	queue := []dungeon.Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		room := grid.At(cur)
		for _, d := range room.Doors.Open() {
			next := cur.Step(d)
			if grid.Occupied(next) && !reached.Has(next) {
				reached.Put(next)
				queue = append(queue, next)
			}
		}
	}
	return reached
}
