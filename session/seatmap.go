// Package session giữ trạng thái một phiên đặt vé: sơ đồ ghế, ghế đã chọn,
// combo, khách hàng và phương thức thanh toán. Mọi mutation (click của user
// lẫn sự kiện realtime) đi qua cùng một cửa, sự kiện khoá ghế luôn thắng
// lựa chọn cục bộ.
package session

import (
	"sort"

	"github.com/MPIO1002/CINEME-sub001/helper"
	"github.com/MPIO1002/CINEME-sub001/model"
)

// Unit là một đơn vị đặt được: một ghế thường, hoặc một cặp ghế đôi.
// Hai ghế của cặp không bao giờ chọn/bỏ riêng lẻ.
type Unit struct {
	Key     string // id ghế đầu tiên của unit
	SeatIds []string
	Label   string
	Type    string
}

// SeatMap là sơ đồ ghế của đúng một suất chiếu, thay cả cụm khi đổi suất
type SeatMap struct {
	ShowtimeId string

	seats  map[string]*model.Seat
	order  []string        // id theo thứ tự catalog
	locked map[string]bool // ghế đang bị khách khác giữ (chỉ thêm, không gỡ)

	units  map[string]*Unit
	unitOf map[string]string // seatId -> unit key
}

func NewSeatMap(showtimeId string, seats []model.Seat) *SeatMap {
	m := &SeatMap{ShowtimeId: showtimeId}
	m.load(seats)
	return m
}

func (m *SeatMap) load(seats []model.Seat) {
	m.seats = make(map[string]*model.Seat, len(seats))
	m.order = make([]string, 0, len(seats))
	m.locked = make(map[string]bool)
	m.units = make(map[string]*Unit)
	m.unitOf = make(map[string]string)

	for i := range seats {
		s := seats[i]
		m.seats[s.ID] = &s
		m.order = append(m.order, s.ID)
	}
	m.buildUnits()
}

// buildUnits ghép ghế đôi theo từng hàng: các ghế COUPLE trong một hàng
// bắt cặp theo thứ tự cột (catalog không có trường pair id)
func (m *SeatMap) buildUnits() {
	coupleByRow := make(map[string][]*model.Seat)

	for _, id := range m.order {
		s := m.seats[id]
		if s.SeatType == model.SeatTypeCouple {
			row := helper.RowKey(*s)
			coupleByRow[row] = append(coupleByRow[row], s)
			continue
		}
		m.units[s.ID] = &Unit{
			Key:     s.ID,
			SeatIds: []string{s.ID},
			Label:   helper.SeatCode(*s),
			Type:    s.SeatType,
		}
		m.unitOf[s.ID] = s.ID
	}

	for _, pair := range coupleByRow {
		sort.SliceStable(pair, func(i, j int) bool {
			return helper.ColumnOf(*pair[i]) < helper.ColumnOf(*pair[j])
		})
		for i := 0; i < len(pair); i += 2 {
			if i+1 < len(pair) {
				a, b := pair[i], pair[i+1]
				u := &Unit{
					Key:     a.ID,
					SeatIds: []string{a.ID, b.ID},
					Label:   helper.CoupleLabel(*a, *b),
					Type:    model.SeatTypeCouple,
				}
				m.units[a.ID] = u
				m.unitOf[a.ID] = a.ID
				m.unitOf[b.ID] = a.ID
			} else {
				// ghế đôi lẻ cặp (layout xấu) → đành coi như unit một ghế
				s := pair[i]
				m.units[s.ID] = &Unit{
					Key:     s.ID,
					SeatIds: []string{s.ID},
					Label:   helper.SeatCode(*s),
					Type:    model.SeatTypeCouple,
				}
				m.unitOf[s.ID] = s.ID
			}
		}
	}
}

// Replace nạp lại toàn bộ sơ đồ (refresh sau xung đột submit).
// Trạng thái khoá cục bộ bỏ hết vì catalog mới là trạng thái server.
func (m *SeatMap) Replace(seats []model.Seat) {
	m.load(seats)
}

func (m *SeatMap) Seat(seatId string) (*model.Seat, bool) {
	s, ok := m.seats[seatId]
	return s, ok
}

// UnitFor trả về unit chứa ghế seatId
func (m *SeatMap) UnitFor(seatId string) (*Unit, bool) {
	key, ok := m.unitOf[seatId]
	if !ok {
		return nil, false
	}
	u, ok := m.units[key]
	return u, ok
}

// UpsertLock đánh dấu các ghế bị khách khác giữ, idempotent.
// Trả về key các unit mới chuyển sang khoá.
func (m *SeatMap) UpsertLock(seatIds []string) []string {
	var changed []string
	seen := make(map[string]bool)
	for _, id := range seatIds {
		if _, ok := m.seats[id]; !ok {
			continue
		}
		if m.locked[id] {
			continue
		}
		m.locked[id] = true
		if key, ok := m.unitOf[id]; ok && !seen[key] {
			seen[key] = true
			changed = append(changed, key)
		}
	}
	return changed
}

// IsLockedByOther kiểm tra ghế có đang bị khách khác giữ không
func (m *SeatMap) IsLockedByOther(seatId string) bool {
	return m.locked[seatId]
}

// IsSelectable là cổng duy nhất quyết định một unit có chọn được không:
// mọi ghế trong unit phải AVAILABLE, không bị khách khác giữ và không
// phải lối đi. Ghế đã nằm trong selection do Selection xử lý.
func (m *SeatMap) IsSelectable(u *Unit) bool {
	if u == nil || u.Type == model.SeatTypeWalkway {
		return false
	}
	for _, id := range u.SeatIds {
		s, ok := m.seats[id]
		if !ok {
			return false
		}
		if s.SeatType == model.SeatTypeWalkway {
			return false
		}
		if s.Status != model.SeatAvailable {
			return false
		}
		if m.locked[id] {
			return false
		}
	}
	return true
}

// UnitPrice tính giá một unit: giá backend của ghế chính nếu > 0,
// ngược lại fallback theo loại (fallback ghế đôi đã là giá cả cặp)
func (m *SeatMap) UnitPrice(u *Unit) float64 {
	primary, ok := m.seats[u.Key]
	if !ok {
		return 0
	}
	return helper.EffectivePrice(*primary)
}

// Rows nhóm ghế theo hàng cho UI, thứ tự cột giữ nguyên, ghế đôi là một
// view chiếm hai cột. selected đánh dấu các unit user đang chọn.
func (m *SeatMap) Rows(selected map[string]bool) []model.SeatRow {
	rowIndex := make(map[string]int)
	var rows []model.SeatRow
	emitted := make(map[string]bool) // unit đã render (ghế đôi chỉ render 1 lần)

	for _, id := range m.order {
		s := m.seats[id]
		key := m.unitOf[id]
		if emitted[key] {
			continue
		}
		emitted[key] = true
		u := m.units[key]

		row := helper.RowKey(*s)
		idx, ok := rowIndex[row]
		if !ok {
			idx = len(rows)
			rowIndex[row] = idx
			rows = append(rows, model.SeatRow{Row: row})
		}

		view := model.SeatView{
			ID:     u.Key,
			Label:  u.Label,
			Type:   u.Type,
			Status: m.viewStatus(u, selected),
			Price:  m.UnitPrice(u),
			Color:  s.Color,
		}
		if len(u.SeatIds) == 2 {
			view.CoupleId = u.SeatIds[1]
		}
		rows[idx].Seats = append(rows[idx].Seats, view)
	}
	return rows
}

func (m *SeatMap) viewStatus(u *Unit, selected map[string]bool) string {
	if selected[u.Key] {
		return model.SeatSelected
	}
	for _, id := range u.SeatIds {
		if m.locked[id] {
			return model.SeatLocked
		}
	}
	primary := m.seats[u.Key]
	return primary.Status
}
