// Package tui is the terminal spectator: a Bubble Tea model that follows
// the arena's event stream, served locally or over SSH.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/worms-arena/internal/arena"
	"github.com/vovakirdan/worms-arena/internal/core"
)

// Spectator layout constants
const (
	tickRate      = 4  // redraws per second
	tableRows     = 6  // visible match rows
	minMapHeight  = 6  // mini-map never shrinks below this
	defaultWidth  = 80 // used until the first WindowSizeMsg
	defaultHeight = 40
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	logStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// frameMsg ages the transient map markers.
type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(time.Second/tickRate, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// eventMsg carries one event from the stream into the update loop.
type eventMsg struct{ evt arena.Event }

// streamClosedMsg reports that the event stream ended.
type streamClosedMsg struct{}

// waitForEvent reads the next event. done may be nil.
func waitForEvent(events <-chan arena.Event, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt, ok := <-events:
			if !ok {
				return streamClosedMsg{}
			}
			return eventMsg{evt: evt}
		case <-done:
			return streamClosedMsg{}
		}
	}
}

// Spectator is the Bubble Tea model that follows live matches.
type Spectator struct {
	events   <-chan arena.Event
	done     <-chan struct{}
	views    map[string]*matchView
	order    []string
	selected string
	clients  int
	table    table.Model
	help     help.Model
	keys     KeyMap
	screen   *core.Screen
	width    int
	height   int
	closed   bool
	quitting bool
}

// NewSpectator creates a spectator reading from events. The stream is
// considered over when events closes or done fires; done may be nil.
func NewSpectator(events <-chan arena.Event, done <-chan struct{}, width, height int) Spectator {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	columns := []table.Column{
		{Title: "Match", Width: 8},
		{Title: "Team 1", Width: 12},
		{Title: "Team 2", Width: 12},
		{Title: "Turn", Width: 5},
		{Title: "Alive", Width: 5},
		{Title: "HP", Width: 7},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableRows),
	)

	m := Spectator{
		events: events,
		done:   done,
		views:  make(map[string]*matchView),
		table:  t,
		help:   help.New(),
		keys:   DefaultKeyMap(),
	}
	m.resize(width, height)
	return m
}

// Init starts reading the stream and the redraw clock.
func (m Spectator) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events, m.done), nextFrame())
}

// Update handles messages.
func (m Spectator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case eventMsg:
		m.apply(msg.evt)
		return m, waitForEvent(m.events, m.done)
	case streamClosedMsg:
		m.closed = true
		return m, nil
	case frameMsg:
		for _, v := range m.views {
			v.tick()
		}
		return m, nextFrame()
	}
	return m, nil
}

func (m Spectator) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp(1)
		m.syncSelection()
	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown(1)
		m.syncSelection()
	}
	return m, nil
}

func (m *Spectator) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// title, status, table (header + rows + border), log, help
	mapHeight := height - 1 - 1 - (tableRows + 2) - logSize - 2
	mapHeight = max(mapHeight, minMapHeight)
	if m.screen == nil {
		m.screen = core.NewScreen(width, mapHeight)
		return
	}
	m.screen.Resize(width, mapHeight)
}

// apply folds an event into the model.
func (m *Spectator) apply(evt arena.Event) {
	switch e := evt.(type) {
	case arena.Welcome:
		m.clients = e.ClientCount
		return
	case arena.MatchList:
		m.applyList(e.Matches)
		m.refreshRows()
		return
	}

	id := arena.MatchIDOf(evt)
	if id == "" {
		return
	}
	v, ok := m.views[id]
	if !ok {
		if _, isStart := evt.(arena.MatchStart); !isStart {
			return
		}
		v = newMatchView(id)
		m.views[id] = v
		m.order = append(m.order, id)
	}
	v.apply(evt)
	m.refreshRows()
}

// applyList makes the live list authoritative: unknown matches are
// added, matches that dropped off are forgotten.
func (m *Spectator) applyList(list []arena.MatchSummary) {
	live := make(map[string]bool, len(list))
	for _, s := range list {
		live[s.MatchID] = true
		v, ok := m.views[s.MatchID]
		if !ok {
			v = newMatchView(s.MatchID)
			m.views[s.MatchID] = v
			m.order = append(m.order, s.MatchID)
		}
		v.summary = s
	}

	kept := m.order[:0]
	for _, id := range m.order {
		if live[id] {
			kept = append(kept, id)
			continue
		}
		delete(m.views, id)
	}
	m.order = kept
}

func (m *Spectator) refreshRows() {
	rows := make([]table.Row, 0, len(m.order))
	cursor := 0
	for i, id := range m.order {
		rows = append(rows, m.views[id].row())
		if id == m.selected {
			cursor = i
		}
	}
	m.table.SetRows(rows)
	if len(rows) > 0 {
		m.table.SetCursor(cursor)
	}
	m.syncSelection()
}

func (m *Spectator) syncSelection() {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.order) {
		m.selected = ""
		return
	}
	m.selected = m.order[c]
}

// Selected returns the id of the match shown on the mini-map.
func (m Spectator) Selected() string {
	return m.selected
}

// Matches returns the ids of the known matches in table order.
func (m Spectator) Matches() []string {
	return append([]string(nil), m.order...)
}

// Log returns the battle log of the selected match.
func (m Spectator) Log() []string {
	v := m.views[m.selected]
	if v == nil {
		return nil
	}
	return append([]string(nil), v.log...)
}

// Closed reports whether the event stream has ended.
func (m Spectator) Closed() bool {
	return m.closed
}

// View renders the spectator.
func (m Spectator) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("worms.arena"))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  %d live  %d watching", len(m.order), m.clients)))
	if m.closed {
		b.WriteString(statusStyle.Render("  (disconnected)"))
	}
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	v := m.views[m.selected]
	b.WriteString(statusStyle.Render(m.statusLine(v)))
	b.WriteString("\n")
	drawMinimap(m.screen, v)
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	var lines []string
	if v != nil {
		lines = v.log
	}
	for i := range logSize {
		if i < len(lines) {
			b.WriteString(logStyle.Render(lines[i]))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Spectator) statusLine(v *matchView) string {
	switch {
	case v == nil:
		return "waiting for matches"
	case v.finished && v.winner == nil:
		return "finished: draw"
	case v.finished:
		return "finished: " + v.teamName(*v.winner) + " wins"
	}
	return fmt.Sprintf("%s vs %s  turn %d  wind %+.2f", v.teamName(0), v.teamName(1), v.turn, v.wind)
}
