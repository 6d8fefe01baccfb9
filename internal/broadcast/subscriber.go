package broadcast

import (
	"sync"

	"github.com/vovakirdan/worms-arena/internal/arena"
)

const defaultBufferSize = 256

// Subscriber is one observer's event queue.
type Subscriber struct {
	id       string
	events   chan arena.Event
	done     chan struct{}
	doneOnce sync.Once
}

func newSubscriber(id string, bufSize int) *Subscriber {
	if bufSize < 1 {
		bufSize = defaultBufferSize
	}
	return &Subscriber{
		id:     id,
		events: make(chan arena.Event, bufSize),
		done:   make(chan struct{}),
	}
}

// ID returns the subscriber identifier.
func (s *Subscriber) ID() string {
	return s.id
}

// Send queues an event for the subscriber.
// If the buffer is full, the oldest event is dropped to make room.
func (s *Subscriber) Send(evt arena.Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel events are delivered on.
func (s *Subscriber) Events() <-chan arena.Event {
	return s.events
}

// Done returns a channel that closes when the subscriber is closed.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// Close marks the subscriber as done.
// Safe to call multiple times.
func (s *Subscriber) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
