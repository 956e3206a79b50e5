package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"smart_parking_booking/internal/domain"
	"smart_parking_booking/internal/repository"
)

const slotColumns = `id, lot_id, lot_name, type, rate, status, vehicle`

type sqlParkingSlotRepository struct {
	q querier
	d dialect
}

func newParkingSlotRepository(q querier, d dialect) repository.ParkingSlotRepository {
	return &sqlParkingSlotRepository{q: q, d: d}
}

func (r *sqlParkingSlotRepository) Create(ctx context.Context, slot *domain.ParkingSlot) error {
	query := r.d.rebind(`INSERT INTO slots (` + slotColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.q.ExecContext(ctx, query,
		slot.ID, slot.LotID, slot.LotName, slot.Type, slot.Rate, slot.Status, slot.Vehicle)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: slot '%s'", repository.ErrDuplicateEntry, slot.ID)
		}
		return fmt.Errorf("ParkingSlotRepository.Create: %w", err)
	}
	return nil
}

func (r *sqlParkingSlotRepository) FindByID(ctx context.Context, id string) (*domain.ParkingSlot, error) {
	slot := &domain.ParkingSlot{}
	query := r.d.rebind(`SELECT ` + slotColumns + ` FROM slots WHERE id = ?`)
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&slot.ID, &slot.LotID, &slot.LotName, &slot.Type, &slot.Rate, &slot.Status, &slot.Vehicle,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSlotRepository.FindByID: %w", err)
	}
	return slot, nil
}

func (r *sqlParkingSlotRepository) FindAll(ctx context.Context) ([]domain.ParkingSlot, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+slotColumns+` FROM slots ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ParkingSlotRepository.FindAll: %w", err)
	}
	defer rows.Close()

	slots := make([]domain.ParkingSlot, 0)
	for rows.Next() {
		var slot domain.ParkingSlot
		if err := rows.Scan(
			&slot.ID, &slot.LotID, &slot.LotName, &slot.Type, &slot.Rate, &slot.Status, &slot.Vehicle,
		); err != nil {
			return nil, fmt.Errorf("ParkingSlotRepository.FindAll (scanning row): %w", err)
		}
		slots = append(slots, slot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingSlotRepository.FindAll (rows error): %w", err)
	}
	return slots, nil
}

func (r *sqlParkingSlotRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM slots`).Scan(&count); err != nil {
		return 0, fmt.Errorf("ParkingSlotRepository.Count: %w", err)
	}
	return count, nil
}

func (r *sqlParkingSlotRepository) Occupy(ctx context.Context, id string, vehicle string) error {
	query := r.d.rebind(`UPDATE slots SET status = ?, vehicle = ? WHERE id = ? AND status = ?`)
	result, err := r.q.ExecContext(ctx, query, domain.SlotOccupied, vehicle, id, domain.SlotAvailable)
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.Occupy: %w", err)
	}
	return expectOneRow(result, "ParkingSlotRepository.Occupy", repository.ErrSlotUnavailable)
}

func (r *sqlParkingSlotRepository) Vacate(ctx context.Context, id string) error {
	query := r.d.rebind(`UPDATE slots SET status = ?, vehicle = '' WHERE id = ?`)
	result, err := r.q.ExecContext(ctx, query, domain.SlotAvailable, id)
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.Vacate: %w", err)
	}
	return expectOneRow(result, "ParkingSlotRepository.Vacate", repository.ErrNotFound)
}
