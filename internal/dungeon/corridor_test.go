package dungeon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeondredge/layoutd/internal/dungeon"
)

// TestClassifyCorridor_AllMasks verifies the full classification table over
// every possible 4-bit connection mask. Bit order: N=1, E=2, S=4, W=8.
func TestClassifyCorridor_AllMasks(t *testing.T) {
	cases := []struct {
		mask     dungeon.Mask
		wantType dungeon.CorridorType
		wantRot  int
	}{
		{0b0000, dungeon.CorridorStraight, 0},    // isolated room
		{0b0001, dungeon.CorridorStraight, 0},    // N dead end
		{0b0010, dungeon.CorridorStraight, 0},    // E dead end
		{0b0011, dungeon.CorridorCorner, 0},      // N+E
		{0b0100, dungeon.CorridorStraight, 0},    // S dead end
		{0b0101, dungeon.CorridorStraight, 0},    // N+S
		{0b0110, dungeon.CorridorCorner, 90},     // E+S
		{0b0111, dungeon.CorridorTJunction, 270}, // closed W
		{0b1000, dungeon.CorridorStraight, 0},    // W dead end
		{0b1001, dungeon.CorridorCorner, 270},    // W+N
		{0b1010, dungeon.CorridorStraight, 90},   // E+W
		{0b1011, dungeon.CorridorTJunction, 180}, // closed S
		{0b1100, dungeon.CorridorCorner, 180},    // S+W
		{0b1101, dungeon.CorridorTJunction, 90},  // closed E
		{0b1110, dungeon.CorridorTJunction, 0},   // closed N
		{0b1111, dungeon.CorridorCrossroads, 0},
	}

	require.Len(t, cases, 16, "table must cover all 16 masks")
	for _, tc := range cases {
		got := dungeon.ClassifyCorridor(tc.mask)
		assert.Equal(t, tc.wantType, got.Type, "mask %04b", tc.mask)
		assert.Equal(t, tc.wantRot, got.Rotation, "mask %04b", tc.mask)
	}
}

// TestClassifyCorridor_Deterministic verifies classification is a pure
// function: repeated calls with the same mask return the same descriptor.
func TestClassifyCorridor_Deterministic(t *testing.T) {
	for m := dungeon.Mask(0); m <= dungeon.MaskAll; m++ {
		first := dungeon.ClassifyCorridor(m)
		second := dungeon.ClassifyCorridor(m)
		assert.Equal(t, first, second, "mask %04b", m)
	}
}

// TestClassifyCorridor_RotationRange verifies every rotation is one of the
// four quarter turns.
func TestClassifyCorridor_RotationRange(t *testing.T) {
	valid := map[int]bool{0: true, 90: true, 180: true, 270: true}
	for m := dungeon.Mask(0); m <= dungeon.MaskAll; m++ {
		desc := dungeon.ClassifyCorridor(m)
		assert.True(t, valid[desc.Rotation], "mask %04b produced rotation %d", m, desc.Rotation)
	}
}

// TestClassifyCorridor_HighBitsIgnored verifies bits above the four
// direction bits do not change the result.
func TestClassifyCorridor_HighBitsIgnored(t *testing.T) {
	for m := dungeon.Mask(0); m <= dungeon.MaskAll; m++ {
		assert.Equal(t, dungeon.ClassifyCorridor(m), dungeon.ClassifyCorridor(m|0xF0))
	}
}
