package repository

import (
	"context"
	"errors"
	"smart_parking_booking/internal/domain"
	"time"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")
var ErrSlotUnavailable = errors.New("slot is no longer available")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

type ParkingLotRepository interface {
	Create(ctx context.Context, lot *domain.ParkingLot) error
	FindAll(ctx context.Context) ([]domain.ParkingLot, error)
}

type ParkingSlotRepository interface {
	Create(ctx context.Context, slot *domain.ParkingSlot) error
	FindByID(ctx context.Context, id string) (*domain.ParkingSlot, error)
	FindAll(ctx context.Context) ([]domain.ParkingSlot, error)
	Count(ctx context.Context) (int, error)
	// Occupy chuyển slot available -> occupied. Trả về ErrSlotUnavailable nếu slot đã đổi trạng thái.
	Occupy(ctx context.Context, id string, vehicle string) error
	Vacate(ctx context.Context, id string) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	FindByID(ctx context.Context, bookingID string) (*domain.Booking, error)
	FindAll(ctx context.Context) ([]domain.Booking, error)
	// FindLatestBySlotID trả về booking mới nhất (theo booking_time) của slot, bất kể trạng thái.
	FindLatestBySlotID(ctx context.Context, slotID string) (*domain.Booking, error)
	// MarkReleased chỉ cập nhật booking đang confirmed; nếu không có dòng nào thì trả về ErrNotFound.
	MarkReleased(ctx context.Context, bookingID string, releasedAt time.Time) error
}

// Repositories groups the repositories bound to one connection or transaction.
type Repositories struct {
	Lots     ParkingLotRepository
	Slots    ParkingSlotRepository
	Bookings BookingRepository
	Users    UserRepository
}

// Store exposes the non-transactional repositories and runs units of work atomically.
type Store interface {
	Repos() Repositories
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
