package realtime

import (
	"context"
	"log"
	"time"

	"github.com/MPIO1002/CINEME-sub001/model"
)

// FetchSeats tải lại catalog ghế, dùng làm transport dự phòng
type FetchSeats func(ctx context.Context, showtimeId string) ([]model.Seat, error)

// Poller là transport dự phòng khi websocket không mở được: poll catalog
// định kỳ và quy đổi ghế vừa mất AVAILABLE thành sự kiện seat_locked.
type Poller struct {
	fetch      FetchSeats
	showtimeId string
	interval   time.Duration
	events     chan<- model.LockEvent

	known map[string]string // seatId -> status lần poll trước
	done  chan struct{}
}

func NewPoller(fetch FetchSeats, showtimeId string, interval time.Duration, events chan<- model.LockEvent) *Poller {
	return &Poller{
		fetch:      fetch,
		showtimeId: showtimeId,
		interval:   interval,
		events:     events,
		known:      make(map[string]string),
		done:       make(chan struct{}),
	}
}

// Seed ghi nhận trạng thái ban đầu để lần poll đầu không phát lại toàn bộ ghế đã bán
func (p *Poller) Seed(seats []model.Seat) {
	for _, s := range seats {
		p.known[s.ID] = s.Status
	}
}

func (p *Poller) Run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

func (p *Poller) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	seats, err := p.fetch(ctx, p.showtimeId)
	if err != nil {
		log.Printf("Poll ghế suất %s lỗi: %v", p.showtimeId, err)
		return
	}

	var locked []string
	for _, s := range seats {
		prev, seen := p.known[s.ID]
		p.known[s.ID] = s.Status
		if !seen {
			continue
		}
		if prev == model.SeatAvailable && s.Status != model.SeatAvailable {
			locked = append(locked, s.ID)
		}
	}

	if len(locked) > 0 {
		select {
		case p.events <- model.LockEvent{Event: model.EventSeatLocked, SeatIds: locked}:
		case <-p.done:
		}
	}
}

func (p *Poller) Close() error {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
	return nil
}
