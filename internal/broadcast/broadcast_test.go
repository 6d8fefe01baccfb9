package broadcast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/worms-arena/internal/arena"
	"github.com/vovakirdan/worms-arena/internal/config"
	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/engine"
)

func sampleEvents(t *testing.T) []arena.Event {
	t.Helper()
	e := engine.New(42, "m-1", []string{"sniper", "tank"}, config.Default())
	winner := 1

	return []arena.Event{
		arena.Welcome{ClientCount: 3},
		arena.MatchStart{MatchID: "m-1", State: e.State()},
		arena.TurnStart{MatchID: "m-1", TurnNumber: 1, ActiveWormID: 0, Wind: -0.37},
		arena.TurnAction{MatchID: "m-1", TurnNumber: 1, Action: engine.Shoot{Weapon: core.Bazooka, Angle: -0.7853981633974483, Power: 0.55}},
		arena.TurnAction{MatchID: "m-1", TurnNumber: 2, Action: engine.Move{Direction: -1}},
		arena.TurnAction{MatchID: "m-1", TurnNumber: 3, Action: engine.MoveTo{X: 312.5, Y: 391}},
		arena.TurnAction{MatchID: "m-1", TurnNumber: 4, Action: engine.UseItem{Item: core.ItemHealthKit}},
		arena.TurnAction{MatchID: "m-1", TurnNumber: 5, Action: engine.Skip{}},
		arena.MovementUpdate{MatchID: "m-1", WormID: 2, Frames: []core.Point{{X: 100, Y: 391}, {X: 104, Y: 390}}},
		arena.ProjectileUpdate{MatchID: "m-1", Frames: []core.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}},
		arena.ExplosionEvent{MatchID: "m-1", Explosions: []core.Explosion{{X: 10, Y: 20, Radius: 30, Damage: 45}}},
		arena.TerrainUpdate{MatchID: "m-1", Damage: []core.Crater{{X: 10, Y: 20, Radius: 30}}},
		arena.WormUpdate{MatchID: "m-1", Worms: e.Worms(), Deaths: []int{3, 5}},
		arena.StatsUpdate{MatchID: "m-1", Stats: e.Stats()},
		arena.MatchEnd{MatchID: "m-1", WinnerID: &winner, Teams: e.State().Teams, Worms: e.Worms()},
		arena.MatchEnd{MatchID: "m-2", Teams: []core.Team{}, Worms: []core.Worm{}},
		arena.MatchList{Matches: []arena.MatchSummary{{MatchID: "m-1", Agent1: "Sniper", Agent2: "Tank", Alive1: 4, TotalHP2: 380, StartedAt: 1700000000000}}},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, evt := range sampleEvents(t) {
		t.Run(string(evt.Type()), func(t *testing.T) {
			data, err := Encode(evt)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"type":"`+string(evt.Type())+`"`)

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, evt, got)
		})
	}
}

func TestEncodeWireShape(t *testing.T) {
	data, err := Encode(arena.TurnStart{MatchID: "abc", TurnNumber: 7, ActiveWormID: 4, Wind: 0.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"turn:start","matchId":"abc","turnNumber":7,"activeWormId":4,"wind":0.5}`, string(data))

	data, err = Encode(arena.TurnAction{MatchID: "abc", TurnNumber: 1, Action: engine.Shoot{Weapon: core.Grenade, Angle: -1, Power: 0.8}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"turn:action","matchId":"abc","turnNumber":1,"action":{"type":"shoot","weaponId":"grenade","angle":-1,"power":0.8}}`, string(data))

	data, err = Encode(arena.TurnAction{MatchID: "abc", TurnNumber: 2, Action: engine.Shoot{Weapon: core.Bazooka, Angle: 0, Power: 1}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"turn:action","matchId":"abc","turnNumber":2,"action":{"type":"shoot","weaponId":"bazooka","angle":0,"power":1}}`, string(data))

	data, err = Encode(arena.TurnAction{MatchID: "abc", TurnNumber: 3, Action: engine.MoveTo{X: 0, Y: 392}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"turn:action","matchId":"abc","turnNumber":3,"action":{"type":"moveTo","targetX":0,"targetY":392}}`, string(data))

	data, err = Encode(arena.MatchEnd{MatchID: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"match:end","matchId":"abc","winnerId":null,"teams":[],"worms":[]}`, string(data))
}

func TestEncodeEmptySlicesAsArrays(t *testing.T) {
	data, err := Encode(arena.WormUpdate{MatchID: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"worm:update","matchId":"abc","worms":[],"deaths":[]}`, string(data))

	data, err = Encode(arena.ProjectileUpdate{MatchID: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"projectile:update","matchId":"abc","frames":[]}`, string(data))

	data, err = Encode(arena.MatchList{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"match:list","matches":[]}`, string(data))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `hello`},
		{"unknown type", `{"type":"chat"}`},
		{"unknown action", `{"type":"turn:action","matchId":"x","action":{"type":"dance"}}`},
		{"bad field", `{"type":"turn:start","turnNumber":"seven"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data)); err == nil {
				t.Errorf("Decode(%s) = nil error, expected error", tt.data)
			}
		})
	}
}

func TestHubWelcomesThenReplays(t *testing.T) {
	hub := NewHub(nil)
	hub.OnConnect(func(sub *Subscriber) {
		sub.Send(arena.MatchList{Matches: []arena.MatchSummary{}})
	})

	first := hub.Subscribe(8)
	second := hub.Subscribe(8)
	assert.Equal(t, 2, hub.ClientCount())

	assert.Equal(t, arena.Welcome{ClientCount: 1}, <-first.Events())
	assert.IsType(t, arena.MatchList{}, <-first.Events())
	assert.Equal(t, arena.Welcome{ClientCount: 2}, <-second.Events())
	assert.IsType(t, arena.MatchList{}, <-second.Events())

	hub.Broadcast(arena.TurnStart{MatchID: "m", TurnNumber: 1})
	assert.Equal(t, arena.TurnStart{MatchID: "m", TurnNumber: 1}, <-first.Events())
	assert.Equal(t, arena.TurnStart{MatchID: "m", TurnNumber: 1}, <-second.Events())

	hub.Unsubscribe(first)
	assert.Equal(t, 1, hub.ClientCount())
	select {
	case <-first.Done():
	default:
		t.Error("Unsubscribe() should close the subscriber")
	}

	hub.Broadcast(arena.TurnStart{MatchID: "m", TurnNumber: 2})
	assert.Empty(t, first.Events())
	assert.Len(t, second.Events(), 1)

	hub.Close()
	assert.Zero(t, hub.ClientCount())
}

func TestSubscriberDropsOldest(t *testing.T) {
	sub := newSubscriber("s", 2)
	sub.Send(arena.TurnStart{TurnNumber: 1})
	sub.Send(arena.TurnStart{TurnNumber: 2})
	sub.Send(arena.TurnStart{TurnNumber: 3})

	assert.Equal(t, arena.TurnStart{TurnNumber: 2}, <-sub.Events())
	assert.Equal(t, arena.TurnStart{TurnNumber: 3}, <-sub.Events())

	sub.Close()
	sub.Close()
	sub.Send(arena.TurnStart{TurnNumber: 4})
	assert.Empty(t, sub.Events())
}

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http")
}

func readEvent(t *testing.T, conn *websocket.Conn) arena.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	evt, err := Decode(data)
	require.NoError(t, err)
	return evt
}

func TestServeWS(t *testing.T) {
	hub := NewHub(nil)
	hub.OnConnect(func(sub *Subscriber) {
		sub.Send(arena.MatchList{Matches: []arena.MatchSummary{}})
	})
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv.URL), nil)
	if resp != nil {
		resp.Body.Close()
	}
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	assert.Equal(t, arena.Welcome{ClientCount: 1}, readEvent(t, conn))
	assert.Equal(t, arena.MatchList{Matches: []arena.MatchSummary{}}, readEvent(t, conn))

	hub.Broadcast(arena.TurnStart{MatchID: "live", TurnNumber: 9, Wind: 0.25})
	assert.Equal(t, arena.TurnStart{MatchID: "live", TurnNumber: 9, Wind: 0.25}, readEvent(t, conn))

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestDial(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := Dial(ctx, wsURL(srv.URL))
	require.NoError(t, err)

	select {
	case evt := <-events:
		assert.Equal(t, arena.Welcome{ClientCount: 1}, evt)
	case <-time.After(5 * time.Second):
		t.Fatal("no welcome received")
	}

	hub.Broadcast(arena.MatchEnd{MatchID: "done"})
	select {
	case evt := <-events:
		assert.Equal(t, arena.MatchEnd{MatchID: "done"}, evt)
	case <-time.After(5 * time.Second):
		t.Fatal("no broadcast received")
	}

	cancel()
	for range events {
	}
}

func TestDialFailure(t *testing.T) {
	_, err := Dial(context.Background(), "ws://127.0.0.1:1/ws")
	assert.Error(t, err)
}
