package handler

import (
	"encoding/base64"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/MPIO1002/CINEME-sub001/constants"
	"github.com/MPIO1002/CINEME-sub001/middleware"
	"github.com/MPIO1002/CINEME-sub001/model"
	"github.com/MPIO1002/CINEME-sub001/session"
	"github.com/MPIO1002/CINEME-sub001/utils"
)

// BookingSessions được gán từ main khi khởi động
var BookingSessions *session.Manager

func statusOf(err error) int {
	switch model.KindOf(err) {
	case model.ErrCatalogUnavailable, model.ErrSubmissionFailed:
		return fiber.StatusBadGateway
	case model.ErrSubmissionConflict:
		return fiber.StatusConflict
	case model.ErrSelectionRejected:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// CreateSession mở phiên đặt vé cho một suất chiếu. Phiên cũ của cùng
// owner bị thay thế — mỗi owner chỉ một kênh realtime.
func CreateSession(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateSessionInput)
	ownerKey := c.Locals("ownerKey").(string)

	s, err := BookingSessions.Create(c.Context(), ownerKey, input.ShowtimeId, middleware.EmployeeId(c))
	if err != nil {
		return utils.ErrorResponse(c, statusOf(err), constants.CATALOG_UNAVAILABLE, err)
	}

	snap := s.Snapshot()
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"ownerKey": ownerKey,
		"snapshot": snap,
	})
}

func GetSession(c *fiber.Ctx) error {
	s, ok := BookingSessions.Get(c.Params("id"))
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, s.Snapshot())
}

// AbandonSession đóng phiên khi user bỏ luồng đặt vé
func AbandonSession(c *fiber.Ctx) error {
	BookingSessions.Abandon(c.Params("id"))
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"closed": true})
}

// ToggleSeat chọn/bỏ một ghế (ghế đôi đi theo cặp)
func ToggleSeat(c *fiber.Ctx) error {
	s, ok := BookingSessions.Get(c.Params("id"))
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}

	snap, err := s.ToggleSeat(c.Params("seatId"))
	if err != nil {
		// cảnh báo nhẹ: UI hiện toast, selection không đổi
		return c.Status(statusOf(err)).JSON(fiber.Map{
			"message":  err.Error(),
			"snapshot": snap,
		})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, snap)
}

func SetCombo(c *fiber.Ctx) error {
	s, ok := BookingSessions.Get(c.Params("id"))
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}

	input := c.Locals("input").(model.ComboInput)
	snap, err := s.SetCombo(c.Params("comboId"), input.Quantity)
	if err != nil {
		return utils.ErrorResponse(c, statusOf(err), err.Error(), nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, snap)
}

// SetCustomer tra khách hàng theo số điện thoại tại quầy
func SetCustomer(c *fiber.Ctx) error {
	s, ok := BookingSessions.Get(c.Params("id"))
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}

	input := c.Locals("input").(model.CustomerInput)
	snap, err := s.SetCustomerByPhone(c.Context(), input.Phone)
	if err != nil {
		// không tìm thấy là 404; backend sập là lỗi upstream, không giả làm 404
		status := statusOf(err)
		if model.KindOf(err) == model.ErrSelectionRejected {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"message":  err.Error(),
			"snapshot": snap,
		})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, snap)
}

func SetPayment(c *fiber.Ctx) error {
	s, ok := BookingSessions.Get(c.Params("id"))
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}

	input := c.Locals("input").(model.PaymentMethodInput)
	return utils.SuccessResponse(c, fiber.StatusOK, s.SetPaymentMethod(input.Method))
}

// SubmitBooking gửi yêu cầu đặt vé nguyên tử lên backend. Thành công thì
// trả URL thanh toán kèm QR cho màn hình quầy; thất bại thì selection
// giữ nguyên để user thử lại.
func SubmitBooking(c *fiber.Ctx) error {
	s, ok := BookingSessions.Get(c.Params("id"))
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}

	paymentUrl, err := s.Submit(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, statusOf(err), err.Error(), nil)
	}

	result := model.SubmitResult{PaymentUrl: paymentUrl}
	if qrBytes, qrErr := utils.GenerateQRCode(paymentUrl, 400); qrErr != nil {
		log.Printf("Lỗi tạo QR thanh toán: %v", qrErr)
	} else {
		result.QrCode = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	// phiên hoàn tất, teardown kênh realtime
	BookingSessions.Abandon(s.ID)

	return utils.SuccessResponse(c, fiber.StatusOK, result)
}
