package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDirections_KnownLot(t *testing.T) {
	d := GenerateDirections("S001", "Lot A", "car")

	assert.Equal(t, "Zone A", d.Zone)
	assert.Equal(t, "123 Main Street, Downtown", d.Address)
	assert.Equal(t, "North Entrance", d.Entrance)
	assert.Equal(t, "2-3 minutes", d.EstimatedTime)
	assert.Equal(t, []string{"next to City Hall", "opposite Metro Station"}, d.Landmarks)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=123%20Main%20Street%2C%20Downtown", d.GoogleMapsLink)

	require.Len(t, d.Directions, 5)
	for i, step := range d.Directions {
		assert.Equal(t, i+1, step.Step)
	}
	assert.Equal(t, "Navigate to 123 Main Street, Downtown", d.Directions[0].Instruction)
	assert.Equal(t, d.Landmarks, d.Directions[0].Landmarks)
	assert.Equal(t, `Look for signs indicating "North Entrance"`, d.Directions[1].Details)
	assert.Equal(t, "Find Zone A (First two rows near entrance)", d.Directions[2].Instruction)
	assert.Equal(t, "Slot S001 is marked with clear signage. It's a CAR parking space.", d.Directions[3].Details)
	assert.Equal(t, "Park your vehicle", d.Directions[4].Instruction)
	assert.Nil(t, d.Directions[4].Landmarks)
}

func TestGenerateDirections_Zones(t *testing.T) {
	tests := []struct {
		slotID string
		zone   string
	}{
		{"S001", "Zone A"},
		{"S030", "Zone A"},
		{"S031", "Zone B"},
		{"S060", "Zone B"},
		{"S061", "Zone C"},
		{"S090", "Zone C"},
		{"S091", "Zone D"},
		{"S120", "Zone D"},
		{"S12abc", "Zone A"},
		{"S-5", "Zone A"},
		{"Sxyz", "Zone D"},
		{"", "Zone D"},
		{"S99999999999999999999999", "Zone D"},
	}
	for _, tt := range tests {
		t.Run(tt.slotID, func(t *testing.T) {
			assert.Equal(t, tt.zone, GenerateDirections(tt.slotID, "Lot A", "car").Zone)
		})
	}
}

func TestGenerateDirections_UnknownLot(t *testing.T) {
	d := GenerateDirections("S050", "Overflow", "ev")

	assert.Equal(t, "Overflow Parking Area", d.Address)
	assert.Equal(t, "Main Entrance", d.Entrance)
	assert.Equal(t, []string{"Follow parking signs"}, d.Landmarks)
	assert.Equal(t, "Zone B", d.Zone)
	assert.Contains(t, d.Directions[3].Details, "EV parking space")
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Overflow%20Parking%20Area", d.GoogleMapsLink)
}

func TestGenerateDirections_Deterministic(t *testing.T) {
	assert.Equal(t, GenerateDirections("S077", "Rooftop", "bike"), GenerateDirections("S077", "Rooftop", "bike"))
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "Elevator%20Access%20-%20Level%205", encodeURIComponent("Elevator Access - Level 5"))
	assert.Equal(t, "a!b'c(d)e*f~g_h.i", encodeURIComponent("a!b'c(d)e*f~g_h.i"))
	assert.Equal(t, "a%26b%3Dc%2Fd", encodeURIComponent("a&b=c/d"))
}
