package model

import "errors"

type ErrorKind string

const (
	ErrCatalogUnavailable  ErrorKind = "CATALOG_UNAVAILABLE"
	ErrRealtimeUnavailable ErrorKind = "REALTIME_UNAVAILABLE"
	ErrSelectionRejected   ErrorKind = "SELECTION_REJECTED"
	ErrSubmissionFailed    ErrorKind = "SUBMISSION_FAILED"
	ErrSubmissionConflict  ErrorKind = "SUBMISSION_CONFLICT"
)

// BookingError là lỗi đã phân loại tại biên component; tầng render
// không bao giờ thấy lỗi transport thô.
type BookingError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *BookingError) Unwrap() error { return e.Err }

func NewBookingError(kind ErrorKind, message string, err error) *BookingError {
	return &BookingError{Kind: kind, Message: message, Err: err}
}

// KindOf trả về loại lỗi, rỗng nếu không phải BookingError
func KindOf(err error) ErrorKind {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
