package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/jinzhu/copier"

	"github.com/MPIO1002/CINEME-sub001/constants"
	"github.com/MPIO1002/CINEME-sub001/helper"
	"github.com/MPIO1002/CINEME-sub001/model"
)

// Backend là phần hợp đồng REST của backend mà một phiên cần dùng
type Backend interface {
	ShowtimeSeats(ctx context.Context, showtimeId string) ([]model.Seat, error)
	Combos(ctx context.Context) ([]model.Combo, error)
	FindCustomerByPhone(ctx context.Context, phone string) (*model.Customer, error)
	CreateBooking(ctx context.Context, order model.BookingOrder) (string, error)
}

// Session là một phiên đặt vé cho đúng một suất chiếu. Hai nguồn mutation
// (click của user qua handler, sự kiện khoá ghế qua mailbox events) đều đi
// qua mutex của phiên; sự kiện khoá luôn gỡ ghế khỏi selection nếu user
// vừa chọn trúng — khoá thắng click, bất kể thứ tự tới.
type Session struct {
	ID         string
	OwnerKey   string
	ShowtimeId string
	EmployeeId string

	mu            sync.Mutex
	backend       Backend
	seatMap       *SeatMap
	selection     *Selection
	comboCatalog  map[string]model.Combo
	comboOrder    []string
	combos        map[string]int
	customer      *model.Customer
	payment       string
	notices       []string
	realtimeDown  bool
	completed     bool
	closed        bool
	defaultUserId string
	lastSeen      time.Time

	events    chan model.LockEvent
	transport io.Closer
	done      chan struct{}

	onChange func(sessionId string, snap model.Snapshot)
}

// Events trả về mailbox để transport realtime đẩy sự kiện vào
func (s *Session) Events() chan<- model.LockEvent { return s.events }

func (s *Session) start() {
	go s.loop()
}

// loop áp sự kiện realtime theo đúng thứ tự nhận, không bao giờ reorder
func (s *Session) loop() {
	for {
		select {
		case <-s.done:
			return
		case ev := <-s.events:
			s.applyEvent(ev)
		}
	}
}

func (s *Session) applyEvent(ev model.LockEvent) {
	s.mu.Lock()
	switch ev.Event {
	case model.EventSeatLocked:
		changed := s.seatMap.UpsertLock(ev.SeatIds)
		for _, key := range changed {
			if s.selection.Remove(key) {
				u := s.seatMap.units[key]
				s.notices = append(s.notices, fmt.Sprintf(constants.SEAT_TAKEN_BY_OTHER, u.Label))
			}
		}
		if len(changed) == 0 {
			// khoá lặp lại, không có gì đổi
			s.mu.Unlock()
			return
		}
	case model.EventSeatLockedFailed:
		// thông báo nhẹ cho user, không đụng vào trạng thái ghế
		s.notices = append(s.notices, fmt.Sprintf(constants.LOCK_FAILED_NOTICE, ev.Message))
	case model.EventChannelDown:
		s.realtimeDown = true
		s.notices = append(s.notices, constants.REALTIME_DEGRADED)
	default:
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emitChange(snap)
}

// ToggleSeat đảo trạng thái chọn của unit chứa ghế seatId
func (s *Session) ToggleSeat(seatId string) (model.Snapshot, error) {
	s.mu.Lock()
	s.lastSeen = time.Now()

	u, ok := s.seatMap.UnitFor(seatId)
	if !ok {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, model.NewBookingError(model.ErrSelectionRejected, constants.SEAT_NOT_FOUND, nil)
	}

	if s.selection.Has(u.Key) {
		s.selection.Remove(u.Key)
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.emitChange(snap)
		return snap, nil
	}

	if !s.seatMap.IsSelectable(u) {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, model.NewBookingError(model.ErrSelectionRejected, constants.SEAT_NOT_SELECTABLE, nil)
	}
	if s.selection.Len() >= constants.MaxSeatsPerOrder {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, model.NewBookingError(model.ErrSelectionRejected, constants.MAX_SEATS_REACHED, nil)
	}

	s.selection.Add(u.Key)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emitChange(snap)
	return snap, nil
}

// SetCombo đặt số lượng một combo, chặn dưới 0, về 0 thì bỏ khỏi đơn
func (s *Session) SetCombo(comboId string, quantity int) (model.Snapshot, error) {
	s.mu.Lock()
	s.lastSeen = time.Now()

	if _, ok := s.comboCatalog[comboId]; !ok {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, model.NewBookingError(model.ErrSelectionRejected, constants.COMBO_NOT_FOUND, nil)
	}
	if quantity <= 0 {
		delete(s.combos, comboId)
	} else {
		s.combos[comboId] = quantity
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emitChange(snap)
	return snap, nil
}

// SetCustomerByPhone tra khách theo số điện thoại; không thấy thì giữ
// nguyên khách mặc định (khách vãng lai)
func (s *Session) SetCustomerByPhone(ctx context.Context, phone string) (model.Snapshot, error) {
	customer, err := s.backend.FindCustomerByPhone(ctx, phone)

	s.mu.Lock()
	s.lastSeen = time.Now()
	if err == nil && customer != nil {
		s.customer = customer
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		// client đã phân loại lỗi tra cứu, đi nguyên kind lên handler
		return snap, err
	}
	if customer == nil {
		return snap, model.NewBookingError(model.ErrSelectionRejected, constants.CUSTOMER_NOT_FOUND, nil)
	}
	s.emitChange(snap)
	return snap, nil
}

func (s *Session) SetPaymentMethod(method string) model.Snapshot {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.payment = method
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emitChange(snap)
	return snap
}

// Submit là thao tác ghi duy nhất của phiên. Tiền điều kiện bị vi phạm
// thì từ chối ngay tại client, chưa đụng tới mạng.
func (s *Session) Submit(ctx context.Context) (string, error) {
	s.mu.Lock()
	s.lastSeen = time.Now()

	if s.selection.Len() == 0 {
		s.mu.Unlock()
		return "", model.NewBookingError(model.ErrSelectionRejected, constants.NO_SEAT_SELECTED, nil)
	}
	if s.payment == "" {
		s.mu.Unlock()
		return "", model.NewBookingError(model.ErrSelectionRejected, constants.NO_PAYMENT_METHOD, nil)
	}

	order := model.BookingOrder{
		UserId:        s.defaultUserId,
		EmployeeId:    s.EmployeeId,
		ShowtimeId:    s.ShowtimeId,
		PaymentMethod: s.payment,
		ListSeatId:    s.selection.SeatIds(s.seatMap),
	}
	if s.customer != nil {
		order.UserId = s.customer.ID
	}
	if len(s.combos) > 0 {
		order.ListCombo = make(map[string]int, len(s.combos))
		for id, qty := range s.combos {
			order.ListCombo[id] = qty
		}
	}
	s.mu.Unlock()

	redirectUrl, err := s.backend.CreateBooking(ctx, order)
	if err != nil {
		if model.KindOf(err) == model.ErrSubmissionConflict {
			s.refreshAfterConflict(ctx)
		}
		// selection/combo/khách hàng giữ nguyên để user thử lại
		return "", err
	}

	s.mu.Lock()
	s.selection.Clear()
	s.combos = make(map[string]int)
	s.customer = nil
	s.payment = ""
	s.completed = true
	s.mu.Unlock()

	return redirectUrl, nil
}

// refreshAfterConflict tải lại catalog và gỡ khỏi selection những unit
// không còn chọn được — user được nhắc chọn lại phần bị mất
func (s *Session) refreshAfterConflict(ctx context.Context) {
	seats, err := s.backend.ShowtimeSeats(ctx, s.ShowtimeId)
	if err != nil {
		log.Printf("Không refresh được catalog sau xung đột: %v", err)
		return
	}

	s.mu.Lock()
	oldKeys := s.selection.Keys()
	s.seatMap.Replace(seats)
	kept := NewSelection()
	for _, key := range oldKeys {
		// key unit là id ghế nên vẫn tra được trên catalog mới
		if u, ok := s.seatMap.UnitFor(key); ok && s.seatMap.IsSelectable(u) {
			kept.Add(u.Key)
		}
	}
	s.selection = kept
	s.notices = append(s.notices, constants.SUBMIT_CONFLICT)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emitChange(snap)
}

// Snapshot trả về trạng thái hiện tại cho UI; notices chỉ đi một lần
func (s *Session) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() model.Snapshot {
	selected := make(map[string]bool)
	for _, k := range s.selection.Keys() {
		selected[k] = true
	}

	var selectionViews []model.SeatView
	total := 0.0
	for _, key := range s.selection.Keys() {
		u := s.seatMap.units[key]
		price := s.seatMap.UnitPrice(u)
		total += price
		view := model.SeatView{
			ID:     u.Key,
			Label:  u.Label,
			Type:   u.Type,
			Status: model.SeatSelected,
			Price:  price,
		}
		selectionViews = append(selectionViews, view)
	}

	var comboLines []model.ComboLine
	for _, id := range s.comboOrder {
		qty, ok := s.combos[id]
		if !ok {
			continue
		}
		combo := s.comboCatalog[id]
		var line model.ComboLine
		copier.Copy(&line, &combo)
		line.Quantity = qty
		line.LineTotal = float64(qty) * combo.Price
		comboLines = append(comboLines, line)
	}
	total += helper.ComboTotal(comboLines)

	var customer *model.Customer
	if s.customer != nil {
		customer = new(model.Customer)
		copier.Copy(customer, s.customer)
	}

	notices := s.notices
	s.notices = nil

	return model.Snapshot{
		SessionId:     s.ID,
		ShowtimeId:    s.ShowtimeId,
		Rows:          s.seatMap.Rows(selected),
		Selection:     selectionViews,
		Combos:        comboLines,
		Customer:      customer,
		PaymentMethod: s.payment,
		Total:         total,
		CanSubmit:     s.selection.Len() > 0 && s.payment != "",
		RealtimeDown:  s.realtimeDown,
		Notices:       notices,
	}
}

func (s *Session) emitChange(snap model.Snapshot) {
	if s.onChange != nil {
		s.onChange(s.ID, snap)
	}
}

// IdleFor cho sweeper biết phiên đã bỏ không bao lâu
func (s *Session) IdleFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastSeen)
}

// Close teardown phiên: đóng kênh realtime trước, không tự nối lại.
// Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	transport := s.transport
	s.mu.Unlock()

	close(s.done)
	if transport != nil {
		if err := transport.Close(); err != nil {
			log.Printf("Đóng kênh realtime phiên %s lỗi: %v", s.ID, err)
		}
	}
}

// sortedComboIds giữ thứ tự hiển thị combo ổn định
func sortedComboIds(catalog map[string]model.Combo) []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
