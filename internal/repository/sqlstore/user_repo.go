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

type sqlUserRepository struct {
	q querier
	d dialect
}

func newUserRepository(q querier, d dialect) repository.UserRepository {
	return &sqlUserRepository{q: q, d: d}
}

func (r *sqlUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	query := r.d.rebind(`INSERT INTO users (username, password_hash, role, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?)
	           RETURNING id`)
	// user.Password ở đây là password_hash
	err := r.q.QueryRowContext(ctx, query, user.Username, user.Password, user.Role, now, now).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username '%s'", repository.ErrDuplicateEntry, user.Username)
		}
		return nil, fmt.Errorf("UserRepository.Create: %w", err)
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	return user, nil
}

func (r *sqlUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{}
	query := r.d.rebind(`SELECT id, username, password_hash, role, created_at, updated_at FROM users WHERE username = ?`)
	err := r.q.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("UserRepository.FindByUsername: %w", err)
	}
	user.CreatedAt = user.CreatedAt.In(time.UTC)
	user.UpdatedAt = user.UpdatedAt.In(time.UTC)
	return user, nil
}
