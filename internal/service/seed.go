package service

import (
	"context"
	"fmt"
	"smart_parking_booking/internal/domain"
	"smart_parking_booking/internal/repository"

	"github.com/rs/zerolog"
)

const slotsPerLot = 24

var seedLotNames = []string{"Lot A", "Lot B", "Lot C", "Rooftop", "Basement 1"}

var seedSlotTypes = []domain.SlotType{
	domain.SlotTypeCar,
	domain.SlotTypeBike,
	domain.SlotTypeEV,
	domain.SlotTypeAccessible,
}

// SlotRates là giá theo giờ mặc định cho từng loại chỗ đỗ.
var SlotRates = map[domain.SlotType]float64{
	domain.SlotTypeCar:        3,
	domain.SlotTypeBike:       1.5,
	domain.SlotTypeEV:         4,
	domain.SlotTypeAccessible: 2.5,
}

// GenerateSeedData returns the sample catalogue: five lots with 24 slots each.
// The output is identical on every call.
func GenerateSeedData() ([]domain.ParkingLot, []domain.ParkingSlot) {
	lots := make([]domain.ParkingLot, 0, len(seedLotNames))
	slots := make([]domain.ParkingSlot, 0, len(seedLotNames)*slotsPerLot)

	counter := 1
	for li, name := range seedLotNames {
		lot := domain.ParkingLot{ID: fmt.Sprintf("lot-%d", li+1), Name: name}
		lots = append(lots, lot)

		for i := 0; i < slotsPerLot; i++ {
			slotType := seedSlotTypes[(i+counter)%len(seedSlotTypes)]
			slots = append(slots, domain.ParkingSlot{
				ID:      fmt.Sprintf("S%03d", counter),
				LotID:   lot.ID,
				LotName: lot.Name,
				Type:    slotType,
				Rate:    SlotRates[slotType],
				Status:  domain.SlotAvailable,
			})
			counter++
		}
	}
	return lots, slots
}

type Seeder struct {
	store  repository.Store
	logger *zerolog.Logger
}

func NewSeeder(store repository.Store, logger *zerolog.Logger) *Seeder {
	return &Seeder{store: store, logger: logger}
}

// Seed inserts the sample catalogue when the store has no slots. It reports
// whether anything was written.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	count, err := s.store.Repos().Slots.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: counting slots: %w", err)
	}
	if count > 0 {
		s.logger.Debug().Int("slots", count).Msg("store already seeded")
		return false, nil
	}

	lots, slots := GenerateSeedData()
	err = s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		for i := range lots {
			if err := repos.Lots.Create(ctx, &lots[i]); err != nil {
				return fmt.Errorf("seed: lot %s: %w", lots[i].ID, err)
			}
		}
		for i := range slots {
			if err := repos.Slots.Create(ctx, &slots[i]); err != nil {
				return fmt.Errorf("seed: slot %s: %w", slots[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.logger.Info().Int("lots", len(lots)).Int("slots", len(slots)).Msg("seeded sample parking data")
	return true, nil
}
