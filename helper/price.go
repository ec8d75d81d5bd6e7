package helper

import "github.com/MPIO1002/CINEME-sub001/model"

// Giá fallback theo loại ghế (VND) khi backend trả price = 0.
// UI không bao giờ được hiện giá 0.
const (
	StandardFallbackPrice = 75000.0
	VipFallbackPrice      = 95000.0
	CoupleFallbackPrice   = 180000.0 // giá cho cả cặp, không nhân đôi
)

// EffectivePrice trả về giá hiển thị của một ghế: giá backend nếu > 0,
// ngược lại fallback theo loại
func EffectivePrice(seat model.Seat) float64 {
	if seat.Price > 0 {
		return seat.Price
	}
	switch seat.SeatType {
	case model.SeatTypeVip:
		return VipFallbackPrice
	case model.SeatTypeCouple:
		return CoupleFallbackPrice
	default:
		return StandardFallbackPrice
	}
}

func ComboTotal(lines []model.ComboLine) float64 {
	total := 0.0
	for _, l := range lines {
		total += float64(l.Quantity) * l.Price
	}
	return total
}
