package domain

type DirectionStep struct {
	Step        int      `json:"step"`
	Instruction string   `json:"instruction"`
	Details     string   `json:"details"`
	Landmarks   []string `json:"landmarks,omitempty"`
}

type Directions struct {
	SlotID         string          `json:"slotId"`
	LotName        string          `json:"lotName"`
	SlotType       string          `json:"slotType"`
	Address        string          `json:"address"`
	Entrance       string          `json:"entrance"`
	Zone           string          `json:"zone"`
	Directions     []DirectionStep `json:"directions"`
	Landmarks      []string        `json:"landmarks"`
	EstimatedTime  string          `json:"estimatedTime"`
	GoogleMapsLink string          `json:"googleMapsLink"`
}
