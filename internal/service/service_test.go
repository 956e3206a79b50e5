package service

import (
	"context"
	"path/filepath"
	"testing"

	"smart_parking_booking/internal/domain"
	"smart_parking_booking/internal/repository/sqlstore"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	db, err := sqlstore.OpenSQLite(filepath.Join(t.TempDir(), "parking.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.CreateTables(context.Background()))
	return sqlstore.NewStore(db)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event domain.SlotEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
