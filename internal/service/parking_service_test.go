package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParkingService_List(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	store := newTestStore(t)
	svc := NewParkingService(store, &logger)

	lots, err := svc.ListLots(ctx)
	require.NoError(t, err)
	assert.NotNil(t, lots)
	assert.Empty(t, lots)

	_, err = NewSeeder(store, &logger).Seed(ctx)
	require.NoError(t, err)

	lots, err = svc.ListLots(ctx)
	require.NoError(t, err)
	require.Len(t, lots, 5)
	assert.Equal(t, "Lot A", lots[0].Name)

	slots, err := svc.ListSlots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 120)
	assert.Equal(t, "S001", slots[0].ID)
}
