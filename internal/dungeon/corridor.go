package dungeon

// CorridorType is the corridor archetype derived from a room's
// connection mask.
type CorridorType int

// Corridor archetypes.
const (
	CorridorStraight CorridorType = iota
	CorridorCorner
	CorridorTJunction
	CorridorCrossroads
)

// String returns the lowercase name of the corridor type.
func (t CorridorType) String() string {
	switch t {
	case CorridorStraight:
		return "straight"
	case CorridorCorner:
		return "corner"
	case CorridorTJunction:
		return "tjunction"
	case CorridorCrossroads:
		return "crossroads"
	default:
		return "invalid"
	}
}

// CorridorDescriptor tells a renderer which corridor asset to place for a
// room and how to orient it. It is derived from the connection mask, never
// stored.
type CorridorDescriptor struct {
	Type CorridorType
	// Rotation is the clockwise mesh rotation in degrees: 0, 90, 180, or 270.
	Rotation int
}

// ClassifyCorridor maps a connection mask to its corridor descriptor.
// It is a pure function, total over all 16 possible masks.
//
// A mask with zero or one open door classifies as a straight stub at
// rotation 0. Dead ends deliberately share the straight archetype; renderers
// that want capped dead-end pieces must special-case mask popcount <= 1
// themselves.
//
// Postcondition: Rotation is one of 0, 90, 180, 270.
func ClassifyCorridor(m Mask) CorridorDescriptor {
	m &= MaskAll

	switch m.Count() {
	case 4:
		return CorridorDescriptor{Type: CorridorCrossroads, Rotation: 0}

	case 3:
		// Rotation follows the single closed direction.
		for _, d := range Directions {
			if !m.Has(d) {
				return CorridorDescriptor{Type: CorridorTJunction, Rotation: int(d) * 90}
			}
		}
		panic("dungeon: ClassifyCorridor found no closed direction in 3-door mask")

	case 2:
		switch {
		case m.Has(North) && m.Has(South):
			return CorridorDescriptor{Type: CorridorStraight, Rotation: 0}
		case m.Has(East) && m.Has(West):
			return CorridorDescriptor{Type: CorridorStraight, Rotation: 90}
		case m.Has(North) && m.Has(East):
			return CorridorDescriptor{Type: CorridorCorner, Rotation: 0}
		case m.Has(East) && m.Has(South):
			return CorridorDescriptor{Type: CorridorCorner, Rotation: 90}
		case m.Has(South) && m.Has(West):
			return CorridorDescriptor{Type: CorridorCorner, Rotation: 180}
		default: // West + North
			return CorridorDescriptor{Type: CorridorCorner, Rotation: 270}
		}

	default:
		// Zero or one door: straight stub.
		return CorridorDescriptor{Type: CorridorStraight, Rotation: 0}
	}
}
