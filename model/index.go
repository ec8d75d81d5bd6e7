package model

type CreateSessionInput struct {
	ShowtimeId string `json:"showtimeId" validate:"required"`
}

type ComboInput struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type PaymentMethodInput struct {
	Method string `json:"method" validate:"required,oneof=MOMO CASH"`
}

type CustomerInput struct {
	Phone string `json:"phone" validate:"required,min=8"`
}

// Snapshot là toàn bộ trạng thái phiên đặt vé gửi xuống UI
type Snapshot struct {
	SessionId     string      `json:"sessionId"`
	ShowtimeId    string      `json:"showtimeId"`
	Rows          []SeatRow   `json:"rows"`
	Selection     []SeatView  `json:"selection"`
	Combos        []ComboLine `json:"combos"`
	Customer      *Customer   `json:"customer,omitempty"`
	PaymentMethod string      `json:"paymentMethod,omitempty"`
	Total         float64     `json:"total"`
	CanSubmit     bool        `json:"canSubmit"`
	RealtimeDown  bool        `json:"realtimeDown"`
	Notices       []string    `json:"notices,omitempty"`
}
