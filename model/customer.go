package model

type Customer struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phoneNumber"`
	Email    string `json:"email,omitempty"`
}

// TokenClaim là thông tin nhân viên lấy từ access token (đặt vé tại quầy)
type TokenClaim struct {
	EmployeeId string `json:"employeeId"`
	Username   string `json:"username"`
	Role       string `json:"role"`
}
