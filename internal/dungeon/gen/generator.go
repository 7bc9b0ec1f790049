package gen

import (
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/dungeondredge/layoutd/internal/dungeon"
)

// Generator produces dungeon layouts from a fixed parameter set. A Generator
// is cheap and stateless between runs; every Generate call creates its own
// randomness source from the resolved seed.
type Generator struct {
	params Params
	logger *zap.Logger
}

// NewGenerator validates params and returns a Generator.
//
// Precondition: params must pass Validate; logger may be nil (no-op logging).
// Postcondition: Returns a Generator or a non-nil validation error.
func NewGenerator(params Params, logger *zap.Logger) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{params: params, logger: logger}, nil
}

// Generate runs the full pipeline — room placement, boss selection,
// connectivity repair — and returns the finished layout.
//
// Postcondition: the returned layout is fully connected (BFS from the portal
// reaches every room in the list), holds exactly one portal room, and is
// bit-identical across runs with the same resolved seed.
func (g *Generator) Generate() (*Layout, error) {
	params := g.params
	if params.Seed == 0 {
		params.Seed = time.Now().UnixNano()
		g.logger.Info("derived seed from clock", zap.Int64("seed", params.Seed))
	}
	src := NewSeededSource(params.Seed)

	start := time.Now()
	layout := g.placeRooms(params, src)
	g.placeBossRoom(layout)
	g.connectRooms(layout)

	g.logger.Info("layout generated",
		zap.Int64("seed", layout.Seed),
		zap.Int("rooms", len(layout.Rooms)),
		zap.Int("iterations", layout.Iterations),
		zap.Int("repaired", layout.RepairedRooms),
		zap.Bool("incomplete", layout.Incomplete),
		zap.Duration("elapsed", time.Since(start)),
	)
	return layout, nil
}

// placeRooms allocates the grid, places the portal room, and grows the
// layout by random-walk frontier expansion.
//
// The frontier is a slice popped at a uniformly random index each step —
// not FIFO or LIFO — which is what produces the organic branching shape.
// A coordinate is marked visited when popped, before any placement happens,
// so a skipped coordinate can never be re-queued into an infinite loop.
func (g *Generator) placeRooms(params Params, src Source) *Layout {
	grid := dungeon.NewGrid(params.GridWidth, params.GridHeight)
	target := params.MinRooms + src.Intn(params.MaxRooms-params.MinRooms+1)

	portal := dungeon.Coord{X: params.GridWidth / 2, Y: 0}
	portalRoom := &dungeon.Room{Coord: portal, Type: dungeon.RoomPortal}
	grid.Place(portalRoom)
	rooms := []*dungeon.Room{portalRoom}

	visited := mapset.New[dungeon.Coord]()
	visited.Put(portal)

	// queued tracks frontier membership so a coordinate is held at most once.
	queued := mapset.New[dungeon.Coord]()
	var frontier []dungeon.Coord
	push := func(c dungeon.Coord) {
		if grid.InBounds(c) && !grid.Occupied(c) && !visited.Has(c) && !queued.Has(c) {
			queued.Put(c)
			frontier = append(frontier, c)
		}
	}
	for _, d := range dungeon.Directions {
		push(portal.Step(d))
	}

	iterations := 0
	iterCap := params.MaxPlacementIterations()
	for len(rooms) < target && len(frontier) > 0 && iterations < iterCap {
		iterations++

		i := src.Intn(len(frontier))
		c := frontier[i]
		frontier = append(frontier[:i], frontier[i+1:]...)
		queued.Remove(c)
		visited.Put(c)

		if grid.Occupied(c) {
			continue
		}

		room := &dungeon.Room{Coord: c, Type: g.rollRoomType(params, src)}
		grid.Place(room)
		rooms = append(rooms, room)

		for _, d := range dungeon.Directions {
			push(c.Step(d))
		}
	}

	incomplete := len(rooms) < target
	if incomplete {
		g.logger.Warn("placement stopped before reaching target room count",
			zap.Int("placed", len(rooms)),
			zap.Int("target", target),
			zap.Int("iterations", iterations),
			zap.Int("iteration_cap", iterCap),
			zap.Int("frontier_remaining", len(frontier)),
		)
	}

	return &Layout{
		Seed:       params.Seed,
		Params:     params,
		Grid:       grid,
		Rooms:      rooms,
		Portal:     portal,
		Incomplete: incomplete,
		Iterations: iterations,
	}
}

// rollRoomType draws a uniform [0,1) value and buckets it into loot, enemy,
// or empty by the configured chances.
func (g *Generator) rollRoomType(params Params, src Source) dungeon.RoomType {
	roll := src.Float64()
	switch {
	case roll < params.LootChance:
		return dungeon.RoomLoot
	case roll < params.LootChance+params.EnemyChance:
		return dungeon.RoomEnemy
	default:
		return dungeon.RoomEmpty
	}
}
