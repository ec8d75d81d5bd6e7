package model

type Combo struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// ComboLine là một dòng combo trong phiên đặt vé
type ComboLine struct {
	Combo
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}
