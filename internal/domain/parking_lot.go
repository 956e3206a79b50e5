package domain

type ParkingLot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
