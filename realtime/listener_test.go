package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MPIO1002/CINEME-sub001/model"
)

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"event":"seat_locked","seatIds":["A1","A2"]}`))
	require.NoError(t, err)
	assert.Equal(t, model.EventSeatLocked, ev.Event)
	assert.Equal(t, []string{"A1", "A2"}, ev.SeatIds)

	ev, err = ParseEvent([]byte(`{"event":"seat_locked_failed","message":"hết lượt giữ ghế"}`))
	require.NoError(t, err)
	assert.Equal(t, model.EventSeatLockedFailed, ev.Event)
	assert.Equal(t, "hết lượt giữ ghế", ev.Message)

	// sự kiện ngoài hợp đồng bị loại
	_, err = ParseEvent([]byte(`{"event":"showtime_updated"}`))
	assert.Error(t, err)

	_, err = ParseEvent([]byte(`không phải json`))
	assert.Error(t, err)
}

func TestPollerDiff(t *testing.T) {
	events := make(chan model.LockEvent, 4)
	seats := []model.Seat{
		{ID: "A1", Status: model.SeatAvailable},
		{ID: "A2", Status: model.SeatAvailable},
		{ID: "A3", Status: model.SeatBooked},
	}

	fetch := func(ctx context.Context, showtimeId string) ([]model.Seat, error) {
		out := make([]model.Seat, len(seats))
		copy(out, seats)
		return out, nil
	}

	p := NewPoller(fetch, "st1", time.Second, events)
	p.Seed(seats)

	// chưa có gì đổi thì không phát sự kiện
	p.poll()
	assert.Empty(t, events)

	// A1 mất AVAILABLE giữa hai lần poll
	seats[0].Status = model.SeatLocked
	p.poll()

	select {
	case ev := <-events:
		assert.Equal(t, model.EventSeatLocked, ev.Event)
		assert.Equal(t, []string{"A1"}, ev.SeatIds)
	default:
		t.Fatal("không nhận được sự kiện seat_locked")
	}

	// poll tiếp với cùng trạng thái là no-op
	p.poll()
	assert.Empty(t, events)
}

func TestPollerIgnoresNewSeats(t *testing.T) {
	events := make(chan model.LockEvent, 4)

	fetch := func(ctx context.Context, showtimeId string) ([]model.Seat, error) {
		return []model.Seat{{ID: "B7", Status: model.SeatBooked}}, nil
	}

	p := NewPoller(fetch, "st1", time.Second, events)
	// không seed: ghế lạ lần đầu thấy chỉ ghi nhận, không phát sự kiện
	p.poll()
	p.poll()
	assert.Empty(t, events)
}

func TestPollerFetchErrorKeepsState(t *testing.T) {
	events := make(chan model.LockEvent, 4)
	fail := false

	fetch := func(ctx context.Context, showtimeId string) ([]model.Seat, error) {
		if fail {
			return nil, errors.New("backend down")
		}
		return []model.Seat{{ID: "A1", Status: model.SeatLocked}}, nil
	}

	p := NewPoller(fetch, "st1", time.Second, events)
	p.Seed([]model.Seat{{ID: "A1", Status: model.SeatAvailable}})

	fail = true
	p.poll()
	assert.Empty(t, events)

	// lần poll sau thành công vẫn thấy được thay đổi
	fail = false
	p.poll()
	select {
	case ev := <-events:
		assert.Equal(t, []string{"A1"}, ev.SeatIds)
	default:
		t.Fatal("không nhận được sự kiện sau khi backend hồi phục")
	}
}

func TestPollerCloseIdempotent(t *testing.T) {
	p := NewPoller(nil, "st1", time.Second, make(chan model.LockEvent))
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}

func TestListenerCloseIdempotent(t *testing.T) {
	l := NewListener("ws://localhost:9", "st1", make(chan model.LockEvent))
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
}
