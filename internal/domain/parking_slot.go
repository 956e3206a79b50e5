package domain

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotOccupied  SlotStatus = "occupied"
)

type SlotType string

const (
	SlotTypeCar        SlotType = "car"
	SlotTypeBike       SlotType = "bike"
	SlotTypeEV         SlotType = "ev"
	SlotTypeAccessible SlotType = "accessible"
)

// ParkingSlot là một chỗ đỗ có thể đặt riêng lẻ. LotName được sao chép từ bãi để tiện trả về API.
type ParkingSlot struct {
	ID      string     `json:"id"`
	LotID   string     `json:"lotId"`
	LotName string     `json:"lotName"`
	Type    SlotType   `json:"type"`
	Rate    float64    `json:"rate"`
	Status  SlotStatus `json:"status"`
	Vehicle string     `json:"vehicle"`
}

func (s *ParkingSlot) IsAvailable() bool {
	return s.Status == SlotAvailable
}
