// Package realtime giữ một kênh sự kiện ghế cho mỗi suất chiếu đang đặt.
// Kênh chính là websocket; nếu không nối được thì chuyển sang polling —
// phía tiêu thụ không được phép giả định transport nào đang chạy.
package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/fasthttp/websocket"

	"github.com/MPIO1002/CINEME-sub001/model"
)

const (
	reconnectBase     = 1 * time.Second
	reconnectCap      = 30 * time.Second
	reconnectAttempts = 6
)

// Listener nối websocket tới kênh realtime của backend cho một suất chiếu
// và đẩy từng sự kiện vào mailbox của phiên theo đúng thứ tự nhận.
type Listener struct {
	wsURL  string
	events chan<- model.LockEvent

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
	done   chan struct{}
}

func NewListener(wsBase, showtimeId string, events chan<- model.LockEvent) *Listener {
	return &Listener{
		wsURL:  fmt.Sprintf("%s?showtime=%s", wsBase, url.QueryEscape(showtimeId)),
		events: events,
		done:   make(chan struct{}),
	}
}

// Dial mở kết nối đầu tiên. Lỗi ở đây để caller quyết định fallback.
func (l *Listener) Dial() error {
	conn, _, err := websocket.DefaultDialer.Dial(l.wsURL, nil)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.conn = conn
	l.mu.Unlock()
	return nil
}

// Run đọc sự kiện cho tới khi Close. Mất kết nối giữa chừng thì thử nối lại
// với delay nhân đôi; hết lượt thì trả về để caller chuyển transport.
func (l *Listener) Run() {
	for {
		conn := l.currentConn()
		if conn == nil {
			return
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			if l.isClosed() {
				return
			}
			log.Printf("Kênh realtime đứt (%s): %v", l.wsURL, err)
			if !l.reconnect() {
				return
			}
			continue
		}

		ev, err := ParseEvent(data)
		if err != nil {
			// message lạ trên kênh, bỏ qua
			continue
		}
		l.emit(ev)
	}
}

func (l *Listener) reconnect() bool {
	delay := reconnectBase
	for attempt := 1; attempt <= reconnectAttempts; attempt++ {
		select {
		case <-l.done:
			return false
		case <-time.After(delay):
		}

		conn, _, err := websocket.DefaultDialer.Dial(l.wsURL, nil)
		if err == nil {
			l.mu.Lock()
			if l.closed {
				l.mu.Unlock()
				conn.Close()
				return false
			}
			l.conn = conn
			l.mu.Unlock()
			log.Printf("Đã nối lại kênh realtime sau %d lần thử", attempt)
			return true
		}

		delay *= 2
		if delay > reconnectCap {
			delay = reconnectCap
		}
	}
	return false
}

func (l *Listener) emit(ev model.LockEvent) {
	select {
	case l.events <- ev:
	case <-l.done:
	}
}

func (l *Listener) currentConn() *websocket.Conn {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	return l.conn
}

func (l *Listener) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *Listener) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	conn := l.conn
	l.mu.Unlock()

	close(l.done)
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// ParseEvent đọc một message trên kênh. Chỉ seat_locked và
// seat_locked_failed nằm trong hợp đồng.
func ParseEvent(data []byte) (model.LockEvent, error) {
	var ev model.LockEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return model.LockEvent{}, err
	}
	switch ev.Event {
	case model.EventSeatLocked, model.EventSeatLockedFailed:
		return ev, nil
	default:
		return model.LockEvent{}, fmt.Errorf("sự kiện không xác định: %q", ev.Event)
	}
}
