package constants

const (
	INVALID_INPUT          = "Dữ liệu không hợp lệ"
	SESSION_NOT_FOUND      = "Phiên đặt vé không tồn tại hoặc đã kết thúc"
	CATALOG_UNAVAILABLE    = "Không tải được sơ đồ ghế, vui lòng thử lại"
	SEAT_NOT_FOUND         = "Ghế không tồn tại trong suất chiếu này"
	SEAT_NOT_SELECTABLE    = "Ghế không khả dụng"
	MAX_SEATS_REACHED      = "Chỉ được chọn tối đa 8 ghế cho một đơn"
	SEAT_TAKEN_BY_OTHER    = "Ghế %s vừa bị khách khác giữ"
	LOCK_FAILED_NOTICE     = "Giữ ghế thất bại: %s"
	REALTIME_DEGRADED      = "Mất kết nối thời gian thực, trạng thái ghế có thể không cập nhật ngay"
	NO_SEAT_SELECTED       = "Vui lòng chọn ít nhất một ghế"
	NO_PAYMENT_METHOD      = "Vui lòng chọn phương thức thanh toán"
	COMBO_NOT_FOUND        = "Combo không tồn tại"
	COMBOS_UNAVAILABLE     = "Không tải được danh mục combo"
	CUSTOMER_NOT_FOUND     = "Không tìm thấy khách hàng với số điện thoại này"
	CUSTOMER_LOOKUP_FAILED = "Không tra cứu được khách hàng, vui lòng thử lại"
	SUBMIT_FAILED          = "Đặt vé thất bại, vui lòng thử lại"
	SUBMIT_CONFLICT        = "Một số ghế vừa được đặt bởi khách khác, vui lòng chọn lại"
)

const (
	PaymentMomo = "MOMO"
	PaymentCash = "CASH"
)

// MaxSeatsPerOrder giới hạn số đơn vị ghế (ghế đôi tính 1) trong một đơn
const MaxSeatsPerOrder = 8
