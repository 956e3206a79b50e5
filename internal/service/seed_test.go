package service

import (
	"context"
	"testing"

	"smart_parking_booking/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeedData(t *testing.T) {
	lots, slots := GenerateSeedData()

	require.Len(t, lots, 5)
	assert.Equal(t, domain.ParkingLot{ID: "lot-1", Name: "Lot A"}, lots[0])
	assert.Equal(t, domain.ParkingLot{ID: "lot-5", Name: "Basement 1"}, lots[4])

	require.Len(t, slots, 120)
	assert.Equal(t, "S001", slots[0].ID)
	assert.Equal(t, "S120", slots[119].ID)

	assert.Equal(t, domain.SlotTypeBike, slots[0].Type)
	assert.Equal(t, 1.5, slots[0].Rate)
	assert.Equal(t, domain.SlotTypeAccessible, slots[1].Type)
	assert.Equal(t, 2.5, slots[1].Rate)

	assert.Equal(t, "lot-1", slots[23].LotID)
	assert.Equal(t, "lot-2", slots[24].LotID)
	assert.Equal(t, "Lot B", slots[24].LotName)

	for _, s := range slots {
		assert.Equal(t, domain.SlotAvailable, s.Status)
		assert.Empty(t, s.Vehicle)
		assert.Equal(t, SlotRates[s.Type], s.Rate)
	}

	lots2, slots2 := GenerateSeedData()
	assert.Equal(t, lots, lots2)
	assert.Equal(t, slots, slots2)
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	logger := zerolog.Nop()
	seeder := NewSeeder(store, &logger)

	seeded, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = seeder.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	count, err := store.Repos().Slots.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, count)

	lots, err := store.Repos().Lots.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, lots, 5)
}
