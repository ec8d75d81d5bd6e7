package model

const (
	SeatTypeStandard = "STANDARD"
	SeatTypeVip      = "VIP"
	SeatTypeCouple   = "COUPLE"
	SeatTypeDisabled = "DISABLED"
	SeatTypeWalkway  = "WALKWAY"
)

const (
	SeatAvailable = "AVAILABLE"
	SeatBooked    = "BOOKED"
	SeatLocked    = "LOCKED"   // ghế đang bị khách khác giữ
	SeatSelected  = "SELECTED" // chỉ dùng cho snapshot gửi UI
)

// Seat là một ghế trong sơ đồ suất chiếu, đúng theo catalog backend trả về.
// Ghế lối đi dùng mã dạng "WK_A5" thay vì "A5".
type Seat struct {
	ID         string  `json:"id"`
	SeatNumber string  `json:"seatNumber"`
	SeatType   string  `json:"seatType"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
	Color      string  `json:"color,omitempty"`
}

// SeatView là trạng thái một ghế gửi xuống UI
type SeatView struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Type     string  `json:"type"`
	Status   string  `json:"status"`
	Price    float64 `json:"price"`
	Color    string  `json:"color,omitempty"`
	CoupleId string  `json:"coupleId,omitempty"` // id ghế còn lại nếu là ghế đôi
}

type SeatRow struct {
	Row   string     `json:"row"`
	Seats []SeatView `json:"seats"`
}
