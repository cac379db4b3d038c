// Package events fans board changes out to Server-Sent Events clients.
package events

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"taskboard/internal/board"
	"taskboard/internal/models"
)

const heartbeatInterval = 25 * time.Second

// Event is one board change as sent to subscribers.
type Event struct {
	Type  board.Op     `json:"type"`
	Board models.Board `json:"board"`
}

// Bus delivers encoded events to every current subscriber. It is safe for
// concurrent use.
type Bus struct {
	mu        sync.RWMutex
	subs      map[chan []byte]struct{}
	heartbeat time.Duration
	encode    func(any) ([]byte, error)
	log       logrus.FieldLogger
}

// NewBus returns a bus with no subscribers. Events that fail to encode are
// logged to log and dropped.
func NewBus(log logrus.FieldLogger) *Bus {
	return &Bus{
		subs:      make(map[chan []byte]struct{}),
		heartbeat: heartbeatInterval,
		encode:    json.Marshal,
		log:       log,
	}
}

// Subscribe registers a buffered channel. cancel unregisters and closes it.
func (b *Bus) Subscribe() (ch chan []byte, cancel func()) {
	ch = make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers reports how many clients are listening.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish never blocks; a subscriber with a full buffer misses the event.
func (b *Bus) Publish(ev Event) {
	data, err := b.encode(ev)
	if err != nil {
		b.log.WithError(err).WithField("op", ev.Type).Error("encode event")
		return
	}
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
		}
	}
	b.mu.RUnlock()
}

// Hook publishes every board mutation.
func (b *Bus) Hook(op board.Op, snap models.Board) {
	b.Publish(Event{Type: op, Board: snap})
}

// ServeSSE streams events to one client until it disconnects.
func (b *Bus) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// The stream outlives the server's write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	ch, cancel := b.Subscribe()
	defer cancel()

	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(b.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(msg)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
