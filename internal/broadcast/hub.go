// Package broadcast fans arena events out to observers: in-process
// subscribers, WebSocket clients and SSH spectators alike.
package broadcast

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/worms-arena/internal/arena"
)

// ConnectHandler is called for every new subscriber, after its welcome.
type ConnectHandler func(sub *Subscriber)

// Hub implements arena.Sink. Thread-safe for concurrent access.
type Hub struct {
	logger *log.Logger

	mu        sync.RWMutex
	subs      map[string]*Subscriber
	onConnect []ConnectHandler
}

var _ arena.Sink = (*Hub)(nil)

// NewHub creates an empty hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		logger: logger,
		subs:   make(map[string]*Subscriber),
	}
}

// OnConnect registers a handler run for every new subscriber.
func (h *Hub) OnConnect(fn ConnectHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onConnect = append(h.onConnect, fn)
}

// Subscribe registers a new subscriber. It is greeted with a Welcome
// event and then handed to the connect handlers.
func (h *Hub) Subscribe(bufSize int) *Subscriber {
	sub := newSubscriber(uuid.NewString(), bufSize)

	h.mu.Lock()
	h.subs[sub.id] = sub
	count := len(h.subs)
	handlers := append([]ConnectHandler(nil), h.onConnect...)
	h.mu.Unlock()

	h.logger.Debug("subscriber joined", "id", sub.id, "clients", count)

	sub.Send(arena.Welcome{ClientCount: count})
	for _, fn := range handlers {
		fn(sub)
	}
	return sub
}

// Unsubscribe removes and closes a subscriber.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	delete(h.subs, sub.id)
	count := len(h.subs)
	h.mu.Unlock()

	sub.Close()
	h.logger.Debug("subscriber left", "id", sub.id, "clients", count)
}

// Broadcast delivers evt to every subscriber without blocking.
func (h *Hub) Broadcast(evt arena.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		sub.Send(evt)
	}
}

// ClientCount returns the number of subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close closes every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, sub := range h.subs {
		sub.Close()
		delete(h.subs, id)
	}
}
