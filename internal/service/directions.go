package service

import (
	"fmt"
	"net/url"
	"smart_parking_booking/internal/domain"
	"strconv"
	"strings"
)

const (
	estimatedWalkTime = "2-3 minutes"
	mapsSearchURL     = "https://www.google.com/maps/search/?api=1&query="
)

type lotLocation struct {
	address   string
	entrance  string
	landmarks []string
}

var lotLocations = map[string]lotLocation{
	"Lot A": {
		address:   "123 Main Street, Downtown",
		entrance:  "North Entrance",
		landmarks: []string{"next to City Hall", "opposite Metro Station"},
	},
	"Lot B": {
		address:   "456 Park Avenue, Midtown",
		entrance:  "East Entrance",
		landmarks: []string{"near Shopping Mall", "beside Park Plaza"},
	},
	"Lot C": {
		address:   "789 Commerce Road, Business District",
		entrance:  "South Entrance",
		landmarks: []string{"across from Office Tower", "adjacent to Convention Center"},
	},
	"Rooftop": {
		address:   "321 Building Heights, City Center",
		entrance:  "Elevator Access - Level 5",
		landmarks: []string{"Top floor of Central Plaza", "via Express Elevator"},
	},
	"Basement 1": {
		address:   "654 Underground Way, Sublevel District",
		entrance:  "Underground Access - Level B1",
		landmarks: []string{"Below Ground Floor", "via Escalator or Elevator"},
	},
}

func locateLot(lotName string) lotLocation {
	if loc, ok := lotLocations[lotName]; ok {
		return loc
	}
	return lotLocation{
		address:   lotName + " Parking Area",
		entrance:  "Main Entrance",
		landmarks: []string{"Follow parking signs"},
	}
}

// slotNumber parses the number after the "S" prefix the way a lenient integer
// parse would: optional sign, then leading digits. ok is false when no digits follow.
func slotNumber(slotID string) (n int, ok bool) {
	s := strings.TrimLeft(strings.TrimPrefix(slotID, "S"), " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func zoneFor(slotID string) (zone, area string) {
	n, ok := slotNumber(slotID)
	switch {
	case !ok:
		return "Zone D", "Far end section"
	case n <= 30:
		return "Zone A", "First two rows near entrance"
	case n <= 60:
		return "Zone B", "Middle section"
	case n <= 90:
		return "Zone C", "Back section"
	default:
		return "Zone D", "Far end section"
	}
}

// encodeURIComponent escapes s like the browser function of the same name, so
// spaces become %20 and the marks !'()* stay literal.
func encodeURIComponent(s string) string {
	r := strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")
	return r.Replace(url.QueryEscape(s))
}

// GenerateDirections builds the walking route to a slot. It is deterministic and
// has no side effects.
func GenerateDirections(slotID, lotName, slotType string) *domain.Directions {
	loc := locateLot(lotName)
	zone, area := zoneFor(slotID)

	steps := []domain.DirectionStep{
		{
			Step:        1,
			Instruction: fmt.Sprintf("Navigate to %s", loc.address),
			Details:     fmt.Sprintf("Your destination is %s", loc.address),
		},
		{
			Step:        2,
			Instruction: fmt.Sprintf("Enter through %s", loc.entrance),
			Details:     fmt.Sprintf("Look for signs indicating %q", loc.entrance),
		},
		{
			Step:        3,
			Instruction: fmt.Sprintf("Find %s (%s)", zone, area),
			Details:     fmt.Sprintf("Follow the overhead signs to %s. Your slot %s is located in %s", zone, slotID, area),
		},
		{
			Step:        4,
			Instruction: fmt.Sprintf("Locate Slot %s", slotID),
			Details:     fmt.Sprintf("Slot %s is marked with clear signage. It's a %s parking space.", slotID, strings.ToUpper(slotType)),
		},
		{
			Step:        5,
			Instruction: "Park your vehicle",
			Details:     fmt.Sprintf("Confirm you're in Slot %s before exiting your vehicle. The slot is reserved for your booking.", slotID),
		},
	}
	if len(loc.landmarks) > 0 {
		steps[0].Landmarks = loc.landmarks
	}

	return &domain.Directions{
		SlotID:         slotID,
		LotName:        lotName,
		SlotType:       slotType,
		Address:        loc.address,
		Entrance:       loc.entrance,
		Zone:           zone,
		Directions:     steps,
		Landmarks:      loc.landmarks,
		EstimatedTime:  estimatedWalkTime,
		GoogleMapsLink: mapsSearchURL + encodeURIComponent(loc.address),
	}
}
