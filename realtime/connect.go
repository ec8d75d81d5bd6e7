package realtime

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/MPIO1002/CINEME-sub001/model"
)

const pollInterval = 5 * time.Second

// channel là transport đang sống của một phiên. Transport có thể bị thay
// giữa chừng (websocket đứt hẳn → polling) mà closer phía phiên giữ vẫn
// đóng đúng cái đang chạy.
type channel struct {
	mu      sync.Mutex
	closed  bool
	current io.Closer
}

func (c *channel) swap(next io.Closer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.current = next
	return true
}

func (c *channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	cur := c.current
	c.mu.Unlock()

	if cur != nil {
		return cur.Close()
	}
	return nil
}

// Connect mở kênh realtime cho một suất chiếu: thử websocket trước; không
// được — ngay từ đầu hoặc sau khi hết lượt nối lại — thì chuyển sang polling
// và báo cho phiên biết kênh đang degraded. Trả về io.Closer để phiên
// teardown khi đổi suất hoặc kết thúc.
func Connect(wsBase, showtimeId string, fetch FetchSeats, seed []model.Seat, events chan<- model.LockEvent) io.Closer {
	ch := &channel{}

	startPolling := func() {
		poller := NewPoller(fetch, showtimeId, pollInterval, events)
		poller.Seed(seed)
		if !ch.swap(poller) {
			return
		}
		go poller.Run()

		// kênh chính không chạy → cảnh báo user xung đột ghế có thể
		// chỉ phát hiện lúc submit
		go func() {
			select {
			case events <- model.LockEvent{Event: model.EventChannelDown}:
			case <-poller.done:
			}
		}()
	}

	listener := NewListener(wsBase, showtimeId, events)
	if err := listener.Dial(); err != nil {
		log.Printf("Không mở được websocket cho suất %s, chuyển sang polling: %v", showtimeId, err)
		startPolling()
		return ch
	}

	ch.swap(listener)
	go func() {
		listener.Run()
		if listener.isClosed() {
			return
		}
		listener.Close()
		log.Printf("Websocket suất %s đứt hẳn sau khi hết lượt nối lại, chuyển sang polling", showtimeId)
		startPolling()
	}()
	return ch
}
