package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"smart_parking_booking/internal/domain"
	"smart_parking_booking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.CreateTables(context.Background()))
	return NewStore(db)
}

func seedSlot(t *testing.T, s *Store, id string) {
	t.Helper()
	ctx := context.Background()
	repos := s.Repos()
	if err := repos.Lots.Create(ctx, &domain.ParkingLot{ID: "lot-1", Name: "Lot A"}); err != nil {
		require.ErrorIs(t, err, repository.ErrDuplicateEntry)
	}
	require.NoError(t, repos.Slots.Create(ctx, &domain.ParkingSlot{
		ID: id, LotID: "lot-1", LotName: "Lot A", Type: domain.SlotTypeCar, Rate: 3, Status: domain.SlotAvailable,
	}))
}

func newBooking(id, slotID string, at time.Time) *domain.Booking {
	return &domain.Booking{
		BookingID:     id,
		SlotID:        slotID,
		LotID:         "lot-1",
		LotName:       "Lot A",
		SlotType:      domain.SlotTypeCar,
		VehicleNumber: "KA01AB1234",
		Hours:         2,
		Rate:          3,
		TotalCost:     6,
		Status:        domain.BookingConfirmed,
		BookingTime:   at,
		ExpiryTime:    at.Add(2 * time.Hour),
	}
}

func TestRebind(t *testing.T) {
	q := `UPDATE slots SET status = ?, vehicle = ? WHERE id = ?`
	assert.Equal(t, q, sqliteDialect.rebind(q))
	assert.Equal(t, `UPDATE slots SET status = $1, vehicle = $2 WHERE id = $3`, postgresDialect.rebind(q))
}

func TestCreateTables_Idempotent(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.db.CreateTables(context.Background()))
}

func TestSlotRepository(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedSlot(t, s, "S002")
	seedSlot(t, s, "S001")
	slots := s.Repos().Slots

	count, err := slots.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all, err := slots.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "S001", all[0].ID)
	assert.Equal(t, "S002", all[1].ID)

	_, err = slots.FindByID(ctx, "S999")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = slots.Create(ctx, &domain.ParkingSlot{ID: "S001", LotID: "lot-1", LotName: "Lot A", Type: domain.SlotTypeCar, Status: domain.SlotAvailable})
	assert.ErrorIs(t, err, repository.ErrDuplicateEntry)

	t.Run("occupy is a compare-and-swap", func(t *testing.T) {
		require.NoError(t, slots.Occupy(ctx, "S001", "KA01AB1234"))
		slot, err := slots.FindByID(ctx, "S001")
		require.NoError(t, err)
		assert.Equal(t, domain.SlotOccupied, slot.Status)
		assert.Equal(t, "KA01AB1234", slot.Vehicle)

		err = slots.Occupy(ctx, "S001", "OTHER")
		assert.ErrorIs(t, err, repository.ErrSlotUnavailable)
		slot, _ = slots.FindByID(ctx, "S001")
		assert.Equal(t, "KA01AB1234", slot.Vehicle)
	})

	t.Run("vacate", func(t *testing.T) {
		require.NoError(t, slots.Vacate(ctx, "S001"))
		slot, err := slots.FindByID(ctx, "S001")
		require.NoError(t, err)
		assert.Equal(t, domain.SlotAvailable, slot.Status)
		assert.Empty(t, slot.Vehicle)
		assert.ErrorIs(t, slots.Vacate(ctx, "S999"), repository.ErrNotFound)
	})
}

func TestBookingRepository(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedSlot(t, s, "S001")
	seedSlot(t, s, "S002")
	bookings := s.Repos().Bookings

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, bookings.Create(ctx, newBooking("BK-1", "S001", base)))
	require.NoError(t, bookings.Create(ctx, newBooking("BK-2", "S001", base.Add(time.Hour))))
	require.NoError(t, bookings.Create(ctx, newBooking("BK-3", "S002", base.Add(30*time.Minute))))

	err := bookings.Create(ctx, newBooking("BK-1", "S001", base))
	assert.ErrorIs(t, err, repository.ErrDuplicateEntry)

	got, err := bookings.FindByID(ctx, "BK-1")
	require.NoError(t, err)
	assert.Equal(t, "S001", got.SlotID)
	assert.Equal(t, 6.0, got.TotalCost)
	assert.True(t, base.Equal(got.BookingTime))
	assert.True(t, base.Add(2*time.Hour).Equal(got.ExpiryTime))
	assert.False(t, got.ReleasedAt.Valid)

	_, err = bookings.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	all, err := bookings.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"BK-2", "BK-3", "BK-1"}, []string{all[0].BookingID, all[1].BookingID, all[2].BookingID})

	latest, err := bookings.FindLatestBySlotID(ctx, "S001")
	require.NoError(t, err)
	assert.Equal(t, "BK-2", latest.BookingID)

	_, err = bookings.FindLatestBySlotID(ctx, "S404")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	releasedAt := base.Add(90 * time.Minute)
	require.NoError(t, bookings.MarkReleased(ctx, "BK-2", releasedAt))
	got, err = bookings.FindByID(ctx, "BK-2")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingReleased, got.Status)
	assert.True(t, got.ReleasedAt.Valid)
	assert.True(t, releasedAt.Equal(got.ReleasedAt.Time))

	assert.ErrorIs(t, bookings.MarkReleased(ctx, "BK-2", releasedAt), repository.ErrNotFound)
	assert.ErrorIs(t, bookings.MarkReleased(ctx, "missing", releasedAt), repository.ErrNotFound)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedSlot(t, s, "S001")

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Slots.Occupy(ctx, "S001", "KA01AB1234"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	slot, err := s.Repos().Slots.FindByID(ctx, "S001")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotAvailable, slot.Status)

	err = s.WithinTx(ctx, func(repos repository.Repositories) error {
		return repos.Slots.Occupy(ctx, "S001", "KA01AB1234")
	})
	require.NoError(t, err)
	slot, _ = s.Repos().Slots.FindByID(ctx, "S001")
	assert.Equal(t, domain.SlotOccupied, slot.Status)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	users := newTestStore(t).Repos().Users

	created, err := users.Create(ctx, &domain.User{Username: "admin", Password: "hash", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = users.Create(ctx, &domain.User{Username: "admin", Password: "hash", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, repository.ErrDuplicateEntry)

	found, err := users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "hash", found.Password)

	_, err = users.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
