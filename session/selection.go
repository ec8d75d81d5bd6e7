package session

// Selection là danh sách unit user đã chọn, giữ thứ tự chọn để UI
// hiển thị ổn định
type Selection struct {
	keys []string
	set  map[string]bool
}

func NewSelection() *Selection {
	return &Selection{set: make(map[string]bool)}
}

func (s *Selection) Has(key string) bool { return s.set[key] }

func (s *Selection) Len() int { return len(s.keys) }

func (s *Selection) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *Selection) Add(key string) {
	if s.set[key] {
		return
	}
	s.set[key] = true
	s.keys = append(s.keys, key)
}

func (s *Selection) Remove(key string) bool {
	if !s.set[key] {
		return false
	}
	delete(s.set, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

func (s *Selection) Clear() {
	s.keys = nil
	s.set = make(map[string]bool)
}

// SeatIds trải các unit đã chọn thành danh sách ghế vật lý cho payload đặt vé
// (ghế đôi đóng góp cả hai ghế)
func (s *Selection) SeatIds(m *SeatMap) []string {
	var ids []string
	for _, key := range s.keys {
		if u, ok := m.units[key]; ok {
			ids = append(ids, u.SeatIds...)
		}
	}
	return ids
}
