package domain

import "time"

type SlotEventType string

const (
	SlotEventBooked   SlotEventType = "slot_booked"
	SlotEventReleased SlotEventType = "slot_released"
)

// SlotEvent được gửi đến frontend qua WebSocket và tới hàng đợi SQS sau khi giao dịch commit.
type SlotEvent struct {
	Type          SlotEventType `json:"type"`
	SlotID        string        `json:"slotId"`
	LotID         string        `json:"lotId"`
	LotName       string        `json:"lotName"`
	Status        SlotStatus    `json:"status"`
	BookingID     string        `json:"bookingId"`
	VehicleNumber string        `json:"vehicleNumber,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}
