package sqlstore

import (
	"context"
	"fmt"
	"smart_parking_booking/internal/domain"
	"smart_parking_booking/internal/repository"
)

type sqlParkingLotRepository struct {
	q querier
	d dialect
}

func newParkingLotRepository(q querier, d dialect) repository.ParkingLotRepository {
	return &sqlParkingLotRepository{q: q, d: d}
}

func (r *sqlParkingLotRepository) Create(ctx context.Context, lot *domain.ParkingLot) error {
	query := r.d.rebind(`INSERT INTO lots (id, name) VALUES (?, ?)`)
	if _, err := r.q.ExecContext(ctx, query, lot.ID, lot.Name); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lot '%s'", repository.ErrDuplicateEntry, lot.ID)
		}
		return fmt.Errorf("ParkingLotRepository.Create: %w", err)
	}
	return nil
}

func (r *sqlParkingLotRepository) FindAll(ctx context.Context) ([]domain.ParkingLot, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM lots ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ParkingLotRepository.FindAll: %w", err)
	}
	defer rows.Close()

	lots := make([]domain.ParkingLot, 0)
	for rows.Next() {
		var lot domain.ParkingLot
		if err := rows.Scan(&lot.ID, &lot.Name); err != nil {
			return nil, fmt.Errorf("ParkingLotRepository.FindAll (scanning row): %w", err)
		}
		lots = append(lots, lot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingLotRepository.FindAll (rows error): %w", err)
	}
	return lots, nil
}
