package dungeon

import (
	"fmt"
	"math"
)

// Coord identifies a cell in the fixed-size grid.
type Coord struct {
	X int
	Y int
}

// Step returns the coordinate one cell away in the given direction.
func (c Coord) Step(d Direction) Coord {
	dx, dy := d.Offset()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// DistanceTo returns the Euclidean grid distance between c and other.
func (c Coord) DistanceTo(other Coord) float64 {
	dx := float64(c.X - other.X)
	dy := float64(c.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// String returns the coordinate in "(x,y)" form.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// RoomType classifies a room's gameplay role.
type RoomType int

// Room types. Exactly one Portal room exists per layout; exactly one Boss
// room once special-room selection has run.
const (
	RoomEmpty RoomType = iota
	RoomPortal
	RoomLoot
	RoomEnemy
	RoomBoss
)

// String returns the lowercase name of the room type.
func (t RoomType) String() string {
	switch t {
	case RoomEmpty:
		return "empty"
	case RoomPortal:
		return "portal"
	case RoomLoot:
		return "loot"
	case RoomEnemy:
		return "enemy"
	case RoomBoss:
		return "boss"
	default:
		return "invalid"
	}
}

// Room is a placed room node. Its identity is its grid coordinate; once
// placed a room is never removed, only replaced by value at the same
// coordinate (boss selection).
type Room struct {
	// Coord is the room's grid cell.
	Coord Coord
	// Type is the room's gameplay role.
	Type RoomType
	// Doors is the connection mask of open passages.
	Doors Mask
}

// Open sets the door bit toward direction d.
func (r *Room) Open(d Direction) {
	r.Doors = r.Doors.With(d)
}

// ConnectedTo reports whether the room has an open door toward d.
func (r *Room) ConnectedTo(d Direction) bool {
	return r.Doors.Has(d)
}
