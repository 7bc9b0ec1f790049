package layoutserver

import (
	"github.com/dungeondredge/layoutd/internal/dungeon"
	"github.com/dungeondredge/layoutd/internal/dungeon/gen"
)

// Message type discriminators for server-to-client frames.
const (
	MessageLayout = "layout"
	MessageError  = "error"
	MessageHello  = "hello"
)

// GenerateRequest is the client frame on the /generate endpoint. A request
// names a rank preset, supplies inline params, or both; inline params win.
type GenerateRequest struct {
	// Rank names a loaded rank preset. Empty means the configured default,
	// unless Params is set.
	Rank string `json:"rank,omitempty"`
	// Seed overrides the preset seed. Zero draws a fresh seed.
	Seed int64 `json:"seed,omitempty"`
	// Params, when set, replaces the preset entirely.
	Params *gen.Params `json:"params,omitempty"`
}

// CoordSnapshot is a grid position on the wire.
type CoordSnapshot struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CorridorSnapshot carries a room's corridor classification.
type CorridorSnapshot struct {
	Type     string `json:"type"`
	Rotation int    `json:"rotation"`
}

// RoomSnapshot is a single placed room on the wire, in placement order.
type RoomSnapshot struct {
	Coord    CoordSnapshot    `json:"coord"`
	Type     string           `json:"type"`
	Doors    uint8            `json:"doors"`
	Corridor CorridorSnapshot `json:"corridor"`
}

// LayoutSnapshot is the full wire form of a generated layout.
type LayoutSnapshot struct {
	// ID is the persisted layout id, empty when persistence is disabled.
	ID         string         `json:"id,omitempty"`
	Rank       string         `json:"rank,omitempty"`
	Seed       int64          `json:"seed"`
	GridWidth  int            `json:"gridWidth"`
	GridHeight int            `json:"gridHeight"`
	Rooms      []RoomSnapshot `json:"rooms"`
	Portal     CoordSnapshot  `json:"portal"`
	Boss       *CoordSnapshot `json:"boss,omitempty"`
	Incomplete bool           `json:"incomplete"`
}

// ServerMessage is the envelope for every server-to-client frame.
type ServerMessage struct {
	Type   string          `json:"type"`
	Layout *LayoutSnapshot `json:"layout,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// SnapshotLayout converts a generated layout to its wire form.
func SnapshotLayout(rank string, layout *gen.Layout) *LayoutSnapshot {
	rooms := make([]RoomSnapshot, 0, len(layout.Rooms))
	for _, room := range layout.Rooms {
		desc := dungeon.ClassifyCorridor(room.Doors)
		rooms = append(rooms, RoomSnapshot{
			Coord: CoordSnapshot{X: room.Coord.X, Y: room.Coord.Y},
			Type:  room.Type.String(),
			Doors: uint8(room.Doors),
			Corridor: CorridorSnapshot{
				Type:     desc.Type.String(),
				Rotation: desc.Rotation,
			},
		})
	}

	snapshot := &LayoutSnapshot{
		Rank:       rank,
		Seed:       layout.Seed,
		GridWidth:  layout.Grid.Width(),
		GridHeight: layout.Grid.Height(),
		Rooms:      rooms,
		Portal:     CoordSnapshot{X: layout.Portal.X, Y: layout.Portal.Y},
		Incomplete: layout.Incomplete,
	}
	if layout.HasBoss {
		snapshot.Boss = &CoordSnapshot{X: layout.Boss.X, Y: layout.Boss.Y}
	}
	return snapshot
}
