package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MPIO1002/CINEME-sub001/model"
)

func TestConnectFallsBackToPollingWhenDialFails(t *testing.T) {
	events := make(chan model.LockEvent, 4)
	seats := []model.Seat{{ID: "A1", Status: model.SeatAvailable}}
	fetch := func(ctx context.Context, showtimeId string) ([]model.Seat, error) {
		return seats, nil
	}

	// không có server websocket nào ở cổng này
	closer := Connect("ws://127.0.0.1:1/ws", "st1", fetch, seats, events)
	defer closer.Close()

	select {
	case ev := <-events:
		assert.Equal(t, model.EventChannelDown, ev.Event)
	case <-time.After(3 * time.Second):
		t.Fatal("không nhận được channel_down khi websocket không mở được")
	}
}

func TestChannelCloseStopsCurrentTransport(t *testing.T) {
	ch := &channel{}
	p := NewPoller(nil, "st1", time.Second, make(chan model.LockEvent))
	require.True(t, ch.swap(p))
	require.NoError(t, ch.Close())

	// transport đang giữ bị đóng theo
	select {
	case <-p.done:
	default:
		t.Fatal("transport hiện tại không được đóng")
	}

	// swap sau khi đóng bị từ chối: polling không được phép sống sót
	// qua teardown của phiên
	p2 := NewPoller(nil, "st1", time.Second, make(chan model.LockEvent))
	assert.False(t, ch.swap(p2))
	require.NoError(t, ch.Close())
}
