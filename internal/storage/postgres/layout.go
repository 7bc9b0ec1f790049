package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dungeondredge/layoutd/internal/dungeon"
	"github.com/dungeondredge/layoutd/internal/dungeon/gen"
)

// ErrLayoutNotFound is returned when a layout lookup yields no results.
var ErrLayoutNotFound = errors.New("layout not found")

// RoomRecord is the persisted form of a single room.
type RoomRecord struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Type  string `json:"type"`
	Doors uint8  `json:"doors"`
}

// StoredLayout is a persisted generation result.
type StoredLayout struct {
	ID         uuid.UUID
	Rank       string
	Seed       int64
	Params     gen.Params
	Rooms      []RoomRecord
	Incomplete bool
	CreatedAt  time.Time
}

// LayoutRepository provides layout persistence operations.
type LayoutRepository struct {
	db *pgxpool.Pool
}

// NewLayoutRepository creates a LayoutRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewLayoutRepository(db *pgxpool.Pool) *LayoutRepository {
	return &LayoutRepository{db: db}
}

// roomRecords flattens a layout's room list into its persisted form,
// preserving placement order.
func roomRecords(layout *gen.Layout) []RoomRecord {
	records := make([]RoomRecord, len(layout.Rooms))
	for i, room := range layout.Rooms {
		records[i] = RoomRecord{
			X:     room.Coord.X,
			Y:     room.Coord.Y,
			Type:  room.Type.String(),
			Doors: uint8(room.Doors),
		}
	}
	return records
}

// Save persists a generated layout under a fresh id.
//
// Precondition: layout must be non-nil.
// Postcondition: Returns the StoredLayout with ID and CreatedAt set.
func (r *LayoutRepository) Save(ctx context.Context, rank string, layout *gen.Layout) (StoredLayout, error) {
	stored := StoredLayout{
		ID:         uuid.New(),
		Rank:       rank,
		Seed:       layout.Seed,
		Params:     layout.Params,
		Rooms:      roomRecords(layout),
		Incomplete: layout.Incomplete,
	}

	paramsJSON, err := json.Marshal(stored.Params)
	if err != nil {
		return StoredLayout{}, fmt.Errorf("marshalling params: %w", err)
	}
	roomsJSON, err := json.Marshal(stored.Rooms)
	if err != nil {
		return StoredLayout{}, fmt.Errorf("marshalling rooms: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO layouts (id, rank, seed, params, rooms, incomplete)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		stored.ID, stored.Rank, stored.Seed, paramsJSON, roomsJSON, stored.Incomplete,
	).Scan(&stored.CreatedAt)
	if err != nil {
		return StoredLayout{}, fmt.Errorf("inserting layout: %w", err)
	}

	return stored, nil
}

// Get retrieves a layout by id.
//
// Postcondition: Returns the StoredLayout or ErrLayoutNotFound.
func (r *LayoutRepository) Get(ctx context.Context, id uuid.UUID) (StoredLayout, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, rank, seed, params, rooms, incomplete, created_at
		 FROM layouts WHERE id = $1`,
		id,
	)
	return scanLayout(row)
}

// ListRecent retrieves the most recently generated layouts, newest first.
//
// Precondition: limit must be > 0.
func (r *LayoutRepository) ListRecent(ctx context.Context, limit int) ([]StoredLayout, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, rank, seed, params, rooms, incomplete, created_at
		 FROM layouts ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying layouts: %w", err)
	}
	defer rows.Close()

	var out []StoredLayout
	for rows.Next() {
		stored, err := scanLayout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layouts: %w", err)
	}
	return out, nil
}

func scanLayout(row pgx.Row) (StoredLayout, error) {
	var (
		stored     StoredLayout
		paramsJSON []byte
		roomsJSON  []byte
	)
	err := row.Scan(&stored.ID, &stored.Rank, &stored.Seed, &paramsJSON, &roomsJSON,
		&stored.Incomplete, &stored.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoredLayout{}, ErrLayoutNotFound
		}
		return StoredLayout{}, fmt.Errorf("scanning layout: %w", err)
	}

	if err := json.Unmarshal(paramsJSON, &stored.Params); err != nil {
		return StoredLayout{}, fmt.Errorf("unmarshalling params: %w", err)
	}
	if err := json.Unmarshal(roomsJSON, &stored.Rooms); err != nil {
		return StoredLayout{}, fmt.Errorf("unmarshalling rooms: %w", err)
	}
	return stored, nil
}

// CountByType tallies the room types in a stored layout; handy for
// dashboards and sanity checks.
func (s StoredLayout) CountByType() map[string]int {
	counts := make(map[string]int)
	for _, room := range s.Rooms {
		counts[room.Type]++
	}
	return counts
}

// HasRoomAt reports whether the stored layout has a room at the given cell.
func (s StoredLayout) HasRoomAt(c dungeon.Coord) bool {
	for _, room := range s.Rooms {
		if room.X == c.X && room.Y == c.Y {
			return true
		}
	}
	return false
}
