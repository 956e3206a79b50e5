package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"smart_parking_booking/internal/domain"
	"smart_parking_booking/internal/repository"
	"time"
)

const bookingColumns = `booking_id, slot_id, lot_id, lot_name, slot_type, vehicle_number, hours,
	rate, total_cost, status, booking_time, expiry_time, released_at`

type sqlBookingRepository struct {
	q querier
	d dialect
}

func newBookingRepository(q querier, d dialect) repository.BookingRepository {
	return &sqlBookingRepository{q: q, d: d}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(
		&b.BookingID, &b.SlotID, &b.LotID, &b.LotName, &b.SlotType, &b.VehicleNumber, &b.Hours,
		&b.Rate, &b.TotalCost, &b.Status, &b.BookingTime, &b.ExpiryTime, &b.ReleasedAt,
	)
	if err != nil {
		return nil, err
	}
	b.BookingTime = b.BookingTime.UTC()
	b.ExpiryTime = b.ExpiryTime.UTC()
	if b.ReleasedAt.Valid {
		b.ReleasedAt.Time = b.ReleasedAt.Time.UTC()
	}
	return b, nil
}

func (r *sqlBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := r.d.rebind(`INSERT INTO bookings (` + bookingColumns + `)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.q.ExecContext(ctx, query,
		b.BookingID, b.SlotID, b.LotID, b.LotName, b.SlotType, b.VehicleNumber, b.Hours,
		b.Rate, b.TotalCost, b.Status, b.BookingTime, b.ExpiryTime, b.ReleasedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: booking '%s'", repository.ErrDuplicateEntry, b.BookingID)
		}
		return fmt.Errorf("BookingRepository.Create: %w", err)
	}
	return nil
}

func (r *sqlBookingRepository) FindByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	query := r.d.rebind(`SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = ?`)
	b, err := scanBooking(r.q.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("BookingRepository.FindByID: %w", err)
	}
	return b, nil
}

func (r *sqlBookingRepository) FindAll(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY booking_time DESC, booking_id DESC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("BookingRepository.FindAll: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("BookingRepository.FindAll (scanning row): %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("BookingRepository.FindAll (rows error): %w", err)
	}
	return bookings, nil
}

func (r *sqlBookingRepository) FindLatestBySlotID(ctx context.Context, slotID string) (*domain.Booking, error) {
	query := r.d.rebind(`SELECT ` + bookingColumns + ` FROM bookings
	           WHERE slot_id = ?
	           ORDER BY booking_time DESC, booking_id DESC LIMIT 1`)
	b, err := scanBooking(r.q.QueryRowContext(ctx, query, slotID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("BookingRepository.FindLatestBySlotID: %w", err)
	}
	return b, nil
}

func (r *sqlBookingRepository) MarkReleased(ctx context.Context, bookingID string, releasedAt time.Time) error {
	query := r.d.rebind(`UPDATE bookings SET status = ?, released_at = ? WHERE booking_id = ? AND status = ?`)
	result, err := r.q.ExecContext(ctx, query, domain.BookingReleased, releasedAt, bookingID, domain.BookingConfirmed)
	if err != nil {
		return fmt.Errorf("BookingRepository.MarkReleased: %w", err)
	}
	return expectOneRow(result, "BookingRepository.MarkReleased", repository.ErrNotFound)
}
