package sqlstore

import (
	"context"
	"fmt"
	"smart_parking_booking/internal/repository"
)

type Store struct {
	db *DB
}

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func newRepositories(q querier, d dialect) repository.Repositories {
	return repository.Repositories{
		Lots:     newParkingLotRepository(q, d),
		Slots:    newParkingSlotRepository(q, d),
		Bookings: newBookingRepository(q, d),
		Users:    newUserRepository(q, d),
	}
}

func (s *Store) Repos() repository.Repositories {
	return newRepositories(s.db.DB, s.db.dialect)
}

// WithinTx runs fn against repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Store.WithinTx (begin): %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(newRepositories(tx, s.db.dialect)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Store.WithinTx (commit): %w", err)
	}
	return nil
}

var _ repository.Store = (*Store)(nil)
