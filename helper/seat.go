package helper

import (
	"strconv"
	"strings"

	"github.com/MPIO1002/CINEME-sub001/model"
)

// WalkwayPrefix là tiền tố mã ghế lối đi ("WK_A5" thay vì "A5")
const WalkwayPrefix = "WK_"

// SeatCode trả về mã ghế đã bỏ tiền tố lối đi
func SeatCode(seat model.Seat) string {
	if seat.SeatType == model.SeatTypeWalkway {
		return strings.TrimPrefix(seat.SeatNumber, WalkwayPrefix)
	}
	return seat.SeatNumber
}

// RowKey lấy hàng của ghế. Ghế lối đi đặt tên theo quy ước riêng
// nên phải bỏ tiền tố trước khi lấy chữ cái đầu.
func RowKey(seat model.Seat) string {
	code := SeatCode(seat)
	if code == "" {
		return ""
	}
	return code[:1]
}

// ColumnOf lấy số cột từ mã ghế ("A12" -> 12); 0 nếu không parse được
func ColumnOf(seat model.Seat) int {
	code := SeatCode(seat)
	i := 0
	for i < len(code) && (code[i] < '0' || code[i] > '9') {
		i++
	}
	n, err := strconv.Atoi(code[i:])
	if err != nil {
		return 0
	}
	return n
}

// CoupleLabel ghép nhãn một cặp ghế đôi: "C1+C2"
func CoupleLabel(a, b model.Seat) string {
	return SeatCode(a) + "+" + SeatCode(b)
}
