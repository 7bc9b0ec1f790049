package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeondredge/layoutd/internal/dungeon"
	"github.com/dungeondredge/layoutd/internal/dungeon/gen"
	"github.com/dungeondredge/layoutd/internal/storage/postgres"
	"github.com/dungeondredge/layoutd/internal/testutil"
)

func testLayout(t *testing.T, seed int64) *gen.Layout {
	t.Helper()
	g, err := gen.NewGenerator(gen.Params{
		GridWidth: 6, GridHeight: 6, MinRooms: 6, MaxRooms: 10,
		LootChance: 0.25, EnemyChance: 0.35, Seed: seed,
	}, nil)
	require.NoError(t, err)
	layout, err := g.Generate()
	require.NoError(t, err)
	return layout
}

func TestLayoutRepository_SaveAndGet(t *testing.T) {
	testutil.RequireIntegration(t)
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	repo := postgres.NewLayoutRepository(pc.RawPool)
	ctx := context.Background()

	layout := testLayout(t, 42)
	stored, err := repo.Save(ctx, "bronze", layout)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
	require.Len(t, stored.Rooms, len(layout.Rooms))

	got, err := repo.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "bronze", got.Rank)
	assert.Equal(t, int64(42), got.Seed)
	assert.Equal(t, stored.Rooms, got.Rooms)
	assert.Equal(t, layout.Params, got.Params)

	// Placement order survives the round trip; the portal is room zero.
	assert.Equal(t, "portal", got.Rooms[0].Type)
	assert.True(t, got.HasRoomAt(layout.Portal))
	assert.True(t, got.HasRoomAt(layout.Boss))
	assert.False(t, got.HasRoomAt(dungeon.Coord{X: -1, Y: -1}))
}

func TestLayoutRepository_GetMissing(t *testing.T) {
	testutil.RequireIntegration(t)
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	repo := postgres.NewLayoutRepository(pc.RawPool)

	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, postgres.ErrLayoutNotFound)
}

func TestLayoutRepository_ListRecent(t *testing.T) {
	testutil.RequireIntegration(t)
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	repo := postgres.NewLayoutRepository(pc.RawPool)
	ctx := context.Background()

	for seed := int64(1); seed <= 3; seed++ {
		_, err := repo.Save(ctx, "silver", testLayout(t, seed))
		require.NoError(t, err)
	}

	got, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, stored := range got {
		assert.Equal(t, "silver", stored.Rank)
		assert.NotEmpty(t, stored.Rooms)
	}
}

func TestStoredLayout_CountByType(t *testing.T) {
	stored := postgres.StoredLayout{Rooms: []postgres.RoomRecord{
		{X: 0, Y: 0, Type: "portal"},
		{X: 1, Y: 0, Type: "loot"},
		{X: 2, Y: 0, Type: "loot"},
		{X: 3, Y: 0, Type: "boss"},
	}}
	counts := stored.CountByType()
	assert.Equal(t, 1, counts["portal"])
	assert.Equal(t, 2, counts["loot"])
	assert.Equal(t, 1, counts["boss"])
	assert.Zero(t, counts["enemy"])
}
