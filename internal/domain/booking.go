package domain

import (
	"encoding/json"
	"time"

	"gopkg.in/guregu/null.v4"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingReleased  BookingStatus = "released"
)

type Booking struct {
	BookingID     string        `json:"bookingId"`
	SlotID        string        `json:"slotId"`
	LotID         string        `json:"lotId"`
	LotName       string        `json:"lotName"`
	SlotType      SlotType      `json:"slotType"`
	VehicleNumber string        `json:"vehicleNumber"`
	Hours         int           `json:"hours"`
	Rate          float64       `json:"rate"`
	TotalCost     float64       `json:"totalCost"`
	Status        BookingStatus `json:"status"`
	BookingTime   time.Time     `json:"bookingTime"`
	ExpiryTime    time.Time     `json:"expiryTime"`
	ReleasedAt    null.Time     `json:"releasedAt"`
}

// JSONTimeLayout luôn ghi đủ 3 chữ số mili giây, ví dụ 2025-06-01T08:30:15.120Z.
const JSONTimeLayout = "2006-01-02T15:04:05.000Z07:00"

func (b Booking) MarshalJSON() ([]byte, error) {
	type bookingAlias Booking
	var releasedAt *string
	if b.ReleasedAt.Valid {
		formatted := b.ReleasedAt.Time.UTC().Format(JSONTimeLayout)
		releasedAt = &formatted
	}
	return json.Marshal(struct {
		bookingAlias
		BookingTime string  `json:"bookingTime"`
		ExpiryTime  string  `json:"expiryTime"`
		ReleasedAt  *string `json:"releasedAt"`
	}{
		bookingAlias: bookingAlias(b),
		BookingTime:  b.BookingTime.UTC().Format(JSONTimeLayout),
		ExpiryTime:   b.ExpiryTime.UTC().Format(JSONTimeLayout),
		ReleasedAt:   releasedAt,
	})
}

// BookingRequestDTO là body của POST /api/book. Các trường bắt buộc được kiểm tra ở service
// để thông báo lỗi giữ đúng định dạng của API.
type BookingRequestDTO struct {
	SlotID        string   `json:"slotId"`
	LotName       string   `json:"lotName"`
	LotID         string   `json:"lotId,omitempty"`
	SlotType      string   `json:"slotType,omitempty"`
	VehicleNumber string   `json:"vehicleNumber"`
	Hours         int      `json:"hours"`
	Rate          *float64 `json:"rate,omitempty"`
}

// ReleaseRequestDTO là body của POST /api/release; chỉ một trong hai trường được phép.
type ReleaseRequestDTO struct {
	SlotID    string `json:"slotId,omitempty"`
	BookingID string `json:"bookingId,omitempty"`
}

type BookingResult struct {
	Booking    *Booking    `json:"booking"`
	Directions *Directions `json:"directions"`
	Message    string      `json:"message,omitempty"`
}

type ReleaseResult struct {
	Booking *Booking `json:"booking"`
	Message string   `json:"message"`
}
