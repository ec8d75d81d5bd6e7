package model

import "encoding/json"

// BookingOrder là payload POST /payments/admin của backend
type BookingOrder struct {
	UserId        string         `json:"userId" validate:"required"`
	EmployeeId    string         `json:"employeeId,omitempty"`
	ShowtimeId    string         `json:"showtimeId" validate:"required"`
	PaymentMethod string         `json:"paymentMethod" validate:"required,oneof=MOMO CASH"`
	ListSeatId    []string       `json:"listSeatId" validate:"required,min=1"`
	ListCombo     map[string]int `json:"listCombo,omitempty"`
}

// BackendResponse là envelope chung của backend
type BackendResponse struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// SubmitResult trả về cho UI sau khi đặt vé thành công
type SubmitResult struct {
	PaymentUrl string `json:"paymentUrl"`
	QrCode     string `json:"qrCode,omitempty"` // PNG base64 của paymentUrl, cho quầy POS
}
