package service

import (
	"context"
	"smart_parking_booking/internal/domain"
	"smart_parking_booking/internal/repository"

	"github.com/rs/zerolog"
)

type ParkingService struct {
	store  repository.Store
	logger *zerolog.Logger
}

func NewParkingService(store repository.Store, logger *zerolog.Logger) *ParkingService {
	return &ParkingService{store: store, logger: logger}
}

// --- ParkingLot ---
func (s *ParkingService) ListLots(ctx context.Context) ([]domain.ParkingLot, error) {
	lots, err := s.store.Repos().Lots.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing lots failed")
		return nil, newError(ErrStore, "Database error", err)
	}
	if lots == nil {
		lots = []domain.ParkingLot{}
	}
	return lots, nil
}

// --- ParkingSlot ---
func (s *ParkingService) ListSlots(ctx context.Context) ([]domain.ParkingSlot, error) {
	slots, err := s.store.Repos().Slots.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing slots failed")
		return nil, newError(ErrStore, "Database error", err)
	}
	if slots == nil {
		slots = []domain.ParkingSlot{}
	}
	return slots, nil
}
