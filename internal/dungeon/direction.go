// Package dungeon provides the dungeon layout model: grid coordinates,
// cardinal directions, rooms, connection masks, and corridor classification.
package dungeon

import "math/bits"

// Direction represents one of the four cardinal directions on the grid.
type Direction int

// Cardinal directions in clockwise order starting at North.
const (
	North Direction = iota
	East
	South
	West
)

// Directions contains all four cardinal directions in clockwise order.
var Directions = []Direction{North, East, South, West}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "invalid"
	}
}

// Opposite returns the opposite cardinal direction (N↔S, E↔W).
//
// Precondition: d must be one of the four cardinal directions.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		panic("dungeon: Opposite called with invalid direction")
	}
}

// Offset returns the unit grid offset for the direction.
// North is +Y, South is -Y, East is +X, West is -X.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	default:
		panic("dungeon: Offset called with invalid direction")
	}
}

// Bit returns the connection-mask bit for the direction.
func (d Direction) Bit() Mask {
	return Mask(1) << uint(d)
}

// Mask is a 4-bit connection mask, one bit per cardinal direction,
// indicating an open door/passage.
type Mask uint8

// MaskAll has all four direction bits set.
const MaskAll Mask = 0x0F

// Has reports whether the bit for direction d is set.
func (m Mask) Has(d Direction) bool {
	return m&d.Bit() != 0
}

// With returns a copy of m with the bit for direction d set.
func (m Mask) With(d Direction) Mask {
	return m | d.Bit()
}

// Count returns the number of open directions in the mask.
//
// Postcondition: 0 <= count <= 4.
func (m Mask) Count() int {
	return bits.OnesCount8(uint8(m & MaskAll))
}

// Open returns the open directions in clockwise order starting at North.
func (m Mask) Open() []Direction {
	var open []Direction
	for _, d := range Directions {
		if m.Has(d) {
			open = append(open, d)
		}
	}
	return open
}
