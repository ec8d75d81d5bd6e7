package model

const (
	EventSeatLocked       = "seat_locked"
	EventSeatLockedFailed = "seat_locked_failed"

	// EventChannelDown là sự kiện nội bộ: kênh realtime đã mất,
	// backend không định nghĩa sự kiện này trên wire.
	EventChannelDown = "channel_down"
)

// LockEvent là thông báo ghế bị giữ đẩy qua kênh realtime của suất chiếu
type LockEvent struct {
	Event   string   `json:"event"`
	SeatIds []string `json:"seatIds,omitempty"`
	Message string   `json:"message,omitempty"`
}
