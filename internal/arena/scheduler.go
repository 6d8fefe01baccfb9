package arena

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/worms-arena/internal/ai"
	"github.com/vovakirdan/worms-arena/internal/config"
	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/registry"
	"github.com/vovakirdan/worms-arena/internal/rng"
)

const maxSeed = 2_000_000_000

// Scheduler keeps a fixed number of match slots busy.
type Scheduler struct {
	cfg      config.Config
	sink     Sink
	logger   *log.Logger
	decider  *ai.Decider
	recorder MatchRecorder // Optional, can be nil
	agents   []registry.Profile
	weapons  *WeaponTally
	now      func() time.Time

	rngMu sync.Mutex
	rng   *rng.RNG

	runMu  sync.Mutex
	cancel context.CancelFunc

	slots []*slot
}

// New creates a scheduler that plays the registered agents against each
// other and narrates to sink. A nil logger discards output.
func New(cfg config.Config, sink Sink, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Scheduler{
		cfg:     cfg,
		sink:    sink,
		logger:  logger,
		decider: ai.NewDecider(cfg),
		agents:  registry.List(),
		weapons: NewWeaponTally(),
		now:     time.Now,
		rng:     rng.New(time.Now().UnixMilli()),
	}
	for i := 0; i < cfg.Scheduler.Slots; i++ {
		s.slots = append(s.slots, &slot{id: i})
	}
	return s
}

// SetRecorder sets the optional match recorder.
func (s *Scheduler) SetRecorder(r MatchRecorder) {
	s.recorder = r
}

// SetSeed reseeds the generator behind agent pairing and match seeds.
func (s *Scheduler) SetSeed(seed int64) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng = rng.New(seed)
}

// SetAgents replaces the roster matches are drawn from.
func (s *Scheduler) SetAgents(agents []registry.Profile) {
	s.agents = append([]registry.Profile(nil), agents...)
}

// Run plays matches in every slot until ctx is cancelled. Slot i starts
// after i times the configured stagger.
func (s *Scheduler) Run(ctx context.Context) error {
	if len(s.agents) < 2 {
		return errors.New("arena: need at least two agents")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.runMu.Lock()
	s.cancel = cancel
	s.runMu.Unlock()

	s.logger.Info("starting match slots", "slots", len(s.slots), "agents", len(s.agents))

	var wg sync.WaitGroup
	for i, sl := range s.slots {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.runSlot(ctx, sl, time.Duration(i)*s.cfg.Scheduler.StartStagger)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.listLoop(ctx)
	}()
	wg.Wait()

	s.logger.Info("match slots stopped")
	return nil
}

// Stop ends a running Run as if its context were cancelled. In-flight
// matches are abandoned without a result.
func (s *Scheduler) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Scheduler) runSlot(ctx context.Context, sl *slot, delay time.Duration) {
	if sleep(ctx, delay) != nil {
		return
	}
	for ctx.Err() == nil {
		s.playSafely(ctx, sl)
		s.cooldown(ctx, sl)
	}
}

// playSafely plays one match; a panic ends the match but not the slot.
func (s *Scheduler) playSafely(ctx context.Context, sl *slot) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("match crashed", "slot", sl.id, "panic", r)
			sl.detach()
		}
	}()

	a1, a2 := s.pickAgents()
	s.play(ctx, sl, uuid.NewString(), s.nextSeed(), a1, a2)
}

// cooldown waits out the pause between matches, publishing the whole
// seconds left on the slot.
func (s *Scheduler) cooldown(ctx context.Context, sl *slot) {
	defer sl.setCountdown(0)

	left := s.cfg.Scheduler.Cooldown
	for left > 0 {
		sl.setCountdown(int((left + time.Second - 1) / time.Second))
		step := min(left, time.Second)
		if sleep(ctx, step) != nil {
			return
		}
		left -= step
	}
}

func (s *Scheduler) listLoop(ctx context.Context) {
	interval := s.cfg.Scheduler.ListInterval
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.emit(MatchList{Matches: s.LiveMatches()})
		case <-ctx.Done():
			return
		}
	}
}

// pickAgents draws two distinct agents uniformly.
func (s *Scheduler) pickAgents() (registry.Profile, registry.Profile) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	n := len(s.agents)
	i := s.rng.Int(0, n-1)
	j := s.rng.Int(0, n-2)
	if j >= i {
		j++
	}
	return s.agents[i], s.agents[j]
}

func (s *Scheduler) nextSeed() int64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return int64(s.rng.Int(1, maxSeed))
}

// PlayMatch plays a single match outside the slots, for offline runs.
// If ctx ends first the match is still ended and recorded after the
// in-flight turn, and ctx's error is returned alongside the outcome.
func (s *Scheduler) PlayMatch(ctx context.Context, seed int64, a1, a2 registry.Profile) (Outcome, error) {
	out := s.play(ctx, &slot{id: -1}, uuid.NewString(), seed, a1, a2)
	if out.Stopped {
		return out, ctx.Err()
	}
	return out, nil
}

// LiveMatches summarises every match currently in progress.
func (s *Scheduler) LiveMatches() []MatchSummary {
	list := make([]MatchSummary, 0, len(s.slots))
	for _, sl := range s.slots {
		if sum, ok := sl.summary(); ok {
			list = append(list, sum)
		}
	}
	return list
}

// Welcome returns what a new observer needs to catch up: the start state
// of every live match followed by the match list.
func (s *Scheduler) Welcome() []Event {
	var events []Event
	for _, sl := range s.slots {
		if start, ok := sl.start(); ok {
			events = append(events, start)
		}
	}
	return append(events, MatchList{Matches: s.LiveMatches()})
}

// NextCountdown returns the shortest cooldown among idle slots in
// seconds, or 0 when no slot is cooling down.
func (s *Scheduler) NextCountdown() int {
	best := 0
	for _, sl := range s.slots {
		if c := sl.getCountdown(); c > 0 && (best == 0 || c < best) {
			best = c
		}
	}
	return best
}

// WeaponStats returns how often each weapon has been fired since startup.
func (s *Scheduler) WeaponStats() map[core.WeaponID]int {
	return s.weapons.Snapshot()
}

func (s *Scheduler) emit(evt Event) {
	if s.sink != nil {
		s.sink.Broadcast(evt)
	}
}

// pause waits for d regardless of cancellation.
func pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
