package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MPIO1002/CINEME-sub001/model"
)

func envelope(statusCode int, message string, data any) []byte {
	raw, _ := json.Marshal(data)
	out, _ := json.Marshal(model.BackendResponse{
		StatusCode: statusCode,
		Message:    message,
		Data:       raw,
	})
	return out
}

func TestShowtimeSeats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/showtimes/st1/seats", r.URL.Path)
		assert.Equal(t, "Bearer token-xyz", r.Header.Get("Authorization"))
		w.Write(envelope(200, "OK", []model.Seat{
			{ID: "A1", SeatNumber: "A1", SeatType: model.SeatTypeStandard, Status: model.SeatAvailable, Price: 75000},
			{ID: "WKA5", SeatNumber: "WK_A5", SeatType: model.SeatTypeWalkway, Status: model.SeatAvailable},
		}))
	}))
	defer server.Close()

	c := New(server.URL).WithToken("token-xyz")
	seats, err := c.ShowtimeSeats(context.Background(), "st1")
	require.NoError(t, err)
	require.Len(t, seats, 2)
	assert.Equal(t, model.SeatTypeWalkway, seats[1].SeatType)
}

func TestShowtimeSeatsBackendDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.ShowtimeSeats(context.Background(), "st1")
	require.Error(t, err)
	assert.Equal(t, model.ErrCatalogUnavailable, model.KindOf(err))
}

func TestCreateBookingSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments/admin", r.URL.Path)
		// mỗi request submit mang một request id riêng
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var order model.BookingOrder
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		assert.Equal(t, []string{"A1", "C1", "C2"}, order.ListSeatId)
		assert.Nil(t, order.ListCombo)

		w.Write(envelope(200, "OK", "https://pay.momo.vn/abc"))
	}))
	defer server.Close()

	c := New(server.URL)
	url, err := c.CreateBooking(context.Background(), model.BookingOrder{
		ShowtimeId:    "st1",
		PaymentMethod: "MOMO",
		ListSeatId:    []string{"A1", "C1", "C2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.momo.vn/abc", url)
}

func TestCreateBookingConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write(envelope(409, "Ghế A1 đã được đặt", nil))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreateBooking(context.Background(), model.BookingOrder{})
	require.Error(t, err)
	assert.Equal(t, model.ErrSubmissionConflict, model.KindOf(err))
	// message của backend đi nguyên văn tới UI
	assert.Equal(t, "Ghế A1 đã được đặt", err.Error())
}

func TestCreateBookingFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write(envelope(400, "Suất chiếu đã đóng bán", nil))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreateBooking(context.Background(), model.BookingOrder{})
	require.Error(t, err)
	assert.Equal(t, model.ErrSubmissionFailed, model.KindOf(err))
	assert.Equal(t, "Suất chiếu đã đóng bán", err.Error())
}

func TestFindCustomerByPhone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		w.Write(envelope(200, "OK", []model.Customer{
			{ID: "u1", FullName: "Nguyễn Văn A", Phone: "0901111111"},
			{ID: "u2", FullName: "Trần Thị B", Phone: "0902222222"},
		}))
	}))
	defer server.Close()

	c := New(server.URL)

	customer, err := c.FindCustomerByPhone(context.Background(), "0902222222")
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "u2", customer.ID)

	// không khớp ai thì (nil, nil) — khách vãng lai
	customer, err = c.FindCustomerByPhone(context.Background(), "0909999999")
	require.NoError(t, err)
	assert.Nil(t, customer)
}

func TestFindCustomerByPhoneBackendDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.FindCustomerByPhone(context.Background(), "0901234567")
	require.Error(t, err)
	// lỗi transport phải ra khỏi package dưới dạng đã phân loại
	assert.Equal(t, model.ErrCatalogUnavailable, model.KindOf(err))
}

func TestCombosBackendDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Combos(context.Background())
	require.Error(t, err)
	assert.Equal(t, model.ErrCatalogUnavailable, model.KindOf(err))
}

func TestCombos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/combos", r.URL.Path)
		w.Write(envelope(200, "OK", []model.Combo{
			{ID: "cb1", Name: "Bắp + nước", Price: 89000},
		}))
	}))
	defer server.Close()

	c := New(server.URL)
	combos, err := c.Combos(context.Background())
	require.NoError(t, err)
	require.Len(t, combos, 1)
	assert.Equal(t, float64(89000), combos[0].Price)
}
