package arena

import (
	"sync"

	"github.com/vovakirdan/worms-arena/internal/core"
)

// WeaponTally counts weapon uses across every match since startup.
// Safe for concurrent use.
type WeaponTally struct {
	mu     sync.Mutex
	counts map[core.WeaponID]int
}

// NewWeaponTally returns a tally with every weapon at zero.
func NewWeaponTally() *WeaponTally {
	counts := make(map[core.WeaponID]int, len(core.WeaponIDs))
	for _, id := range core.WeaponIDs {
		counts[id] = 0
	}
	return &WeaponTally{counts: counts}
}

// Add adds the difference between two readings of a match's
// weapons-used counters.
func (t *WeaponTally) Add(before, after map[core.WeaponID]int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, n := range after {
		if d := n - before[id]; d > 0 {
			t.counts[id] += d
		}
	}
}

// Snapshot returns a copy of the counters.
func (t *WeaponTally) Snapshot() map[core.WeaponID]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[core.WeaponID]int, len(t.counts))
	for id, n := range t.counts {
		out[id] = n
	}
	return out
}
