package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MPIO1002/CINEME-sub001/helper"
	"github.com/MPIO1002/CINEME-sub001/model"
)

func testSeats() []model.Seat {
	seats := []model.Seat{
		{ID: "A1", SeatNumber: "A1", SeatType: model.SeatTypeStandard, Status: model.SeatAvailable},
		{ID: "A2", SeatNumber: "A2", SeatType: model.SeatTypeStandard, Status: model.SeatAvailable},
		{ID: "A3", SeatNumber: "A3", SeatType: model.SeatTypeStandard, Status: model.SeatAvailable},
		{ID: "A4", SeatNumber: "A4", SeatType: model.SeatTypeStandard, Status: model.SeatAvailable},
		{ID: "WKA5", SeatNumber: "WK_A5", SeatType: model.SeatTypeWalkway, Status: model.SeatAvailable},
		{ID: "B1", SeatNumber: "B1", SeatType: model.SeatTypeStandard, Status: model.SeatAvailable},
		{ID: "B2", SeatNumber: "B2", SeatType: model.SeatTypeStandard, Status: model.SeatAvailable},
		{ID: "B3", SeatNumber: "B3", SeatType: model.SeatTypeStandard, Status: model.SeatAvailable},
		{ID: "B4", SeatNumber: "B4", SeatType: model.SeatTypeStandard, Status: model.SeatAvailable},
		{ID: "C1", SeatNumber: "C1", SeatType: model.SeatTypeCouple, Status: model.SeatAvailable},
		{ID: "C2", SeatNumber: "C2", SeatType: model.SeatTypeCouple, Status: model.SeatAvailable},
	}
	return seats
}

func TestSeatMapCoupleUnit(t *testing.T) {
	m := NewSeatMap("st1", testSeats())

	u1, ok := m.UnitFor("C1")
	require.True(t, ok)
	u2, ok := m.UnitFor("C2")
	require.True(t, ok)

	// hai ghế của cặp luôn thuộc cùng một unit
	assert.Equal(t, u1.Key, u2.Key)
	assert.Equal(t, []string{"C1", "C2"}, u1.SeatIds)
	assert.Equal(t, "C1+C2", u1.Label)
}

func TestSeatMapWalkwayNeverSelectable(t *testing.T) {
	m := NewSeatMap("st1", testSeats())

	u, ok := m.UnitFor("WKA5")
	require.True(t, ok)
	// lối đi không bao giờ chọn được, kể cả khi status là AVAILABLE
	assert.False(t, m.IsSelectable(u))
}

func TestSeatMapUpsertLockIdempotent(t *testing.T) {
	m := NewSeatMap("st1", testSeats())

	changed := m.UpsertLock([]string{"A1", "A2"})
	assert.Len(t, changed, 2)
	assert.True(t, m.IsLockedByOther("A1"))

	// khoá lại ghế đã khoá là no-op
	changed = m.UpsertLock([]string{"A1", "A2"})
	assert.Empty(t, changed)

	// ghế không tồn tại bị bỏ qua
	changed = m.UpsertLock([]string{"Z9"})
	assert.Empty(t, changed)
}

func TestSeatMapLockCoupleByOneMember(t *testing.T) {
	m := NewSeatMap("st1", testSeats())

	changed := m.UpsertLock([]string{"C2"})
	require.Len(t, changed, 1)

	u, _ := m.UnitFor("C1")
	// một ghế của cặp bị giữ thì cả unit hết chọn được
	assert.False(t, m.IsSelectable(u))
}

func TestSeatMapRows(t *testing.T) {
	m := NewSeatMap("st1", testSeats())

	rows := m.Rows(map[string]bool{"A1": true})
	require.Len(t, rows, 3)

	assert.Equal(t, "A", rows[0].Row)
	// hàng A: 4 ghế thường + 1 lối đi
	require.Len(t, rows[0].Seats, 5)
	assert.Equal(t, model.SeatSelected, rows[0].Seats[0].Status)
	assert.Equal(t, model.SeatTypeWalkway, rows[0].Seats[4].Type)

	// hàng C: cặp ghế đôi render thành một view duy nhất
	assert.Equal(t, "C", rows[2].Row)
	require.Len(t, rows[2].Seats, 1)
	assert.Equal(t, "C1+C2", rows[2].Seats[0].Label)
	assert.Equal(t, "C2", rows[2].Seats[0].CoupleId)
	assert.Equal(t, helper.CoupleFallbackPrice, rows[2].Seats[0].Price)
}

func TestSeatMapBookedNotSelectable(t *testing.T) {
	seats := testSeats()
	seats[0].Status = model.SeatBooked
	m := NewSeatMap("st1", seats)

	u, _ := m.UnitFor("A1")
	assert.False(t, m.IsSelectable(u))
}

func TestSeatMapReplaceDropsLocalLocks(t *testing.T) {
	m := NewSeatMap("st1", testSeats())
	m.UpsertLock([]string{"A1"})

	m.Replace(testSeats())
	// catalog mới là trạng thái server, khoá cục bộ cũ bỏ hết
	assert.False(t, m.IsLockedByOther("A1"))
}
