package session

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/MPIO1002/CINEME-sub001/model"
)

// ConnectFunc mở kênh realtime cho một suất chiếu; trả về closer để teardown
type ConnectFunc func(showtimeId string, seed []model.Seat, events chan<- model.LockEvent) io.Closer

// Manager giữ các phiên đặt vé đang sống. Mỗi owner (nhân viên quầy hoặc
// guest) chỉ có tối đa một phiên — tức một kênh realtime — tại một thời điểm.
type Manager struct {
	mu       sync.Mutex
	backend  Backend
	connect  ConnectFunc
	sessions map[string]*Session
	byOwner  map[string]string

	defaultUserId string
	ttl           time.Duration
	scheduler     gocron.Scheduler
	onChange      func(sessionId string, snap model.Snapshot)
}

func NewManager(backend Backend, connect ConnectFunc, defaultUserId string, ttl time.Duration) *Manager {
	return &Manager{
		backend:       backend,
		connect:       connect,
		sessions:      make(map[string]*Session),
		byOwner:       make(map[string]string),
		defaultUserId: defaultUserId,
		ttl:           ttl,
	}
}

// SetOnChange gắn hook đẩy snapshot xuống UI mỗi khi phiên thay đổi
func (mg *Manager) SetOnChange(fn func(sessionId string, snap model.Snapshot)) {
	mg.onChange = fn
}

// Create mở phiên mới cho một suất chiếu. Phiên cũ của cùng owner (nếu có)
// bị đóng trước — đổi suất là thay cả sơ đồ ghế lẫn kênh realtime.
func (mg *Manager) Create(ctx context.Context, ownerKey, showtimeId, employeeId string) (*Session, error) {
	seats, err := mg.backend.ShowtimeSeats(ctx, showtimeId)
	if err != nil {
		return nil, err
	}

	// combo không chặn luồng đặt ghế
	catalog := make(map[string]model.Combo)
	if combos, err := mg.backend.Combos(ctx); err != nil {
		log.Printf("Không tải được danh mục combo: %v", err)
	} else {
		for _, c := range combos {
			catalog[c.ID] = c
		}
	}

	mg.mu.Lock()
	if oldId, ok := mg.byOwner[ownerKey]; ok {
		if old, ok := mg.sessions[oldId]; ok {
			delete(mg.sessions, oldId)
			defer old.Close()
		}
		delete(mg.byOwner, ownerKey)
	}

	s := &Session{
		ID:            uuid.New().String(),
		OwnerKey:      ownerKey,
		ShowtimeId:    showtimeId,
		EmployeeId:    employeeId,
		backend:       mg.backend,
		seatMap:       NewSeatMap(showtimeId, seats),
		selection:     NewSelection(),
		comboCatalog:  catalog,
		comboOrder:    sortedComboIds(catalog),
		combos:        make(map[string]int),
		defaultUserId: mg.defaultUserId,
		lastSeen:      time.Now(),
		events:        make(chan model.LockEvent, 16),
		done:          make(chan struct{}),
		onChange:      mg.onChange,
	}
	mg.sessions[s.ID] = s
	mg.byOwner[ownerKey] = s.ID
	mg.mu.Unlock()

	s.start()
	if mg.connect != nil {
		t := mg.connect(showtimeId, seats, s.events)
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			t.Close()
		} else {
			s.transport = t
			s.mu.Unlock()
		}
	}
	return s, nil
}

func (mg *Manager) Get(sessionId string) (*Session, bool) {
	mg.mu.Lock()
	defer mg.mu.Unlock()
	s, ok := mg.sessions[sessionId]
	return s, ok
}

// Abandon đóng một phiên do user bỏ luồng đặt vé
func (mg *Manager) Abandon(sessionId string) {
	mg.mu.Lock()
	s, ok := mg.sessions[sessionId]
	if ok {
		delete(mg.sessions, sessionId)
		if mg.byOwner[s.OwnerKey] == sessionId {
			delete(mg.byOwner, s.OwnerKey)
		}
	}
	mg.mu.Unlock()

	if ok {
		s.Close()
	}
}

// StartSweeper dọn các phiên bỏ quên (chạy mỗi phút)
func (mg *Manager) StartSweeper() error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	mg.scheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(mg.sweep),
	)
	if err != nil {
		return err
	}

	s.Start()
	log.Println("Sweeper phiên đặt vé đã khởi động (mỗi 1 phút)")
	return nil
}

func (mg *Manager) sweep() {
	mg.mu.Lock()
	var expired []*Session
	for id, s := range mg.sessions {
		if s.IdleFor() > mg.ttl {
			expired = append(expired, s)
			delete(mg.sessions, id)
			if mg.byOwner[s.OwnerKey] == id {
				delete(mg.byOwner, s.OwnerKey)
			}
		}
	}
	mg.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		log.Printf("Đã dọn %d phiên đặt vé bỏ quên", len(expired))
	}
}

// Stop dừng sweeper và đóng toàn bộ phiên còn sống
func (mg *Manager) Stop() {
	if mg.scheduler != nil {
		if err := mg.scheduler.Shutdown(); err != nil {
			log.Printf("Dừng sweeper lỗi: %v", err)
		}
	}

	mg.mu.Lock()
	all := make([]*Session, 0, len(mg.sessions))
	for _, s := range mg.sessions {
		all = append(all, s)
	}
	mg.sessions = make(map[string]*Session)
	mg.byOwner = make(map[string]string)
	mg.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}
