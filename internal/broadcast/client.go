package broadcast

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/worms-arena/internal/arena"
)

// Dial connects to a hub's WebSocket endpoint and returns a channel of
// decoded events. The channel closes when ctx ends or the connection
// drops; undecodable messages are skipped.
func Dial(ctx context.Context, url string) (<-chan arena.Event, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("broadcast: dial %s: %w", url, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	events := make(chan arena.Event, defaultBufferSize)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()
	go func() {
		defer close(events)
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			evt, err := Decode(data)
			if err != nil {
				continue
			}
			select {
			case events <- evt:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}
