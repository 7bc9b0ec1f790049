package dungeon

import "fmt"

// Grid is a fixed-size arena of room slots addressed by coordinate.
// Empty slots are nil. Rooms are owned by the grid; replacing a slot
// (boss selection) swaps the value rather than mutating the old room.
type Grid struct {
	width  int
	height int
	cells  [][]*Room
}

// NewGrid allocates an empty width × height grid.
//
// Precondition: width > 0 and height > 0.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("dungeon: NewGrid called with non-positive dimensions %dx%d", width, height))
	}
	cells := make([][]*Room, width)
	for x := range cells {
		cells[x] = make([]*Room, height)
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c addresses a cell inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// At returns the room at c, or nil if the slot is empty or out of bounds.
func (g *Grid) At(c Coord) *Room {
	if !g.InBounds(c) {
		return nil
	}
	return g.cells[c.X][c.Y]
}

// Occupied reports whether the slot at c holds a room.
func (g *Grid) Occupied(c Coord) bool {
	return g.At(c) != nil
}

// Place stores room in the slot at its coordinate.
//
// Precondition: room must be non-nil, in bounds, and the slot must be empty.
func (g *Grid) Place(room *Room) {
	if room == nil {
		panic("dungeon: Place called with nil room")
	}
	if !g.InBounds(room.Coord) {
		panic(fmt.Sprintf("dungeon: Place out of bounds at %s", room.Coord))
	}
	if g.cells[room.Coord.X][room.Coord.Y] != nil {
		panic(fmt.Sprintf("dungeon: Place on occupied slot at %s", room.Coord))
	}
	g.cells[room.Coord.X][room.Coord.Y] = room
}

// Replace swaps the room at c for a new one, returning the new room.
// Connections are not carried over; callers replace rooms only before
// connectivity is built.
//
// Precondition: the slot at c must be occupied.
func (g *Grid) Replace(c Coord, t RoomType) *Room {
	if !g.Occupied(c) {
		panic(fmt.Sprintf("dungeon: Replace on empty slot at %s", c))
	}
	room := &Room{Coord: c, Type: t}
	g.cells[c.X][c.Y] = room
	return room
}

// Neighbors returns the occupied rooms grid-adjacent to c, in clockwise
// direction order starting at North.
func (g *Grid) Neighbors(c Coord) []*Room {
	var out []*Room
	for _, d := range Directions {
		if r := g.At(c.Step(d)); r != nil {
			out = append(out, r)
		}
	}
	return out
}
