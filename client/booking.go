package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MPIO1002/CINEME-sub001/constants"
	"github.com/MPIO1002/CINEME-sub001/model"
)

// CreateBooking gửi một yêu cầu đặt vé nguyên tử và trả về URL thanh toán.
// Backend là nơi duy nhất quyết định ghế còn trống hay không: xung đột ghế
// tại bước này là kết quả bình thường, không phải bug.
func (c *Client) CreateBooking(ctx context.Context, order model.BookingOrder) (string, error) {
	envelope, httpStatus, err := c.postJSON(ctx, "/payments/admin", order)
	if err != nil {
		return "", model.NewBookingError(model.ErrSubmissionFailed, constants.SUBMIT_FAILED, err)
	}

	status := envelope.StatusCode
	if status == 0 {
		status = httpStatus
	}

	if status == http.StatusConflict || httpStatus == http.StatusConflict {
		message := envelope.Message
		if message == "" {
			message = constants.SUBMIT_CONFLICT
		}
		return "", model.NewBookingError(model.ErrSubmissionConflict, message, nil)
	}

	if status < 200 || status >= 300 {
		message := envelope.Message
		if message == "" {
			message = constants.SUBMIT_FAILED
		}
		return "", model.NewBookingError(model.ErrSubmissionFailed, message, nil)
	}

	var redirectUrl string
	if err := json.Unmarshal(envelope.Data, &redirectUrl); err != nil || redirectUrl == "" {
		return "", model.NewBookingError(model.ErrSubmissionFailed, constants.SUBMIT_FAILED, err)
	}
	return redirectUrl, nil
}
