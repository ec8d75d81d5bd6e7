package handler

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/MPIO1002/CINEME-sub001/model"
)

// uiConnections giữ các UI đang xem từng phiên. uiMutex được giữ xuyên suốt
// mọi lần ghi: mỗi connection chỉ được phép một writer tại một thời điểm,
// mà snapshot có thể được đẩy từ cả handler lẫn goroutine sự kiện của phiên.
var (
	uiConnections = make(map[string]map[*websocket.Conn]bool)
	uiMutex       sync.Mutex
)

// SessionWebsocket đẩy snapshot phiên đặt vé xuống UI ghế
func SessionWebsocket(c *websocket.Conn) {
	sessionId := c.Params("id")

	s, ok := BookingSessions.Get(sessionId)
	if !ok {
		c.Close()
		return
	}

	snap := s.Snapshot()

	// đăng ký và gửi trạng thái hiện tại dưới cùng một lần giữ khoá,
	// để broadcast không chen vào giữa
	uiMutex.Lock()
	if uiConnections[sessionId] == nil {
		uiConnections[sessionId] = make(map[*websocket.Conn]bool)
	}
	uiConnections[sessionId][c] = true
	err := c.WriteJSON(snap)
	uiMutex.Unlock()

	defer func() {
		uiMutex.Lock()
		delete(uiConnections[sessionId], c)
		if len(uiConnections[sessionId]) == 0 {
			delete(uiConnections, sessionId)
		}
		uiMutex.Unlock()
		c.Close()
	}()

	if err != nil {
		return
	}

	// Giữ connection, không có message nào từ UI cần xử lý
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

// BroadcastSession đẩy snapshot mới cho mọi UI đang xem phiên này; Manager
// gọi hook này sau mỗi mutation. uiMutex giữ qua cả vòng ghi để serialize
// các writer trên từng connection.
func BroadcastSession(sessionId string, snap model.Snapshot) {
	uiMutex.Lock()
	defer uiMutex.Unlock()

	for conn := range uiConnections[sessionId] {
		if err := conn.WriteJSON(snap); err != nil {
			log.Printf("Lỗi đẩy snapshot phiên %s: %v", sessionId, err)
			delete(uiConnections[sessionId], conn)
			conn.Close()
		}
	}
	if conns, ok := uiConnections[sessionId]; ok && len(conns) == 0 {
		delete(uiConnections, sessionId)
	}
}
