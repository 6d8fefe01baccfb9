package tui

import (
	"github.com/vovakirdan/worms-arena/internal/core"
)

const (
	runeGround = '█'
	runeWater  = '~'
	runeTrail  = '·'
	runeBlast  = '*'
	runeWorm   = 'w'
	runeActive = 'W'
)

// drawMinimap renders a match onto s, scaling the whole map to the
// screen. Each cell samples the terrain at its center.
func drawMinimap(s *core.Screen, v *matchView) {
	s.Clear()
	if v == nil {
		s.DrawText(1, 0, "no match selected", core.ColorGray)
		return
	}
	if v.terrain == nil {
		s.DrawText(1, 0, "waiting for the next match:start", core.ColorGray)
		return
	}

	w, h := s.Width(), s.Height()
	if w == 0 || h == 0 {
		return
	}
	sx := float64(v.terrain.Width()) / float64(w)
	sy := float64(v.terrain.Height()) / float64(h)
	water := float64(v.terrain.WaterLevel())

	for cy := range h {
		py := (float64(cy) + 0.5) * sy
		for cx := range w {
			px := (float64(cx) + 0.5) * sx
			switch {
			case py >= water:
				s.SetColored(cx, cy, runeWater, core.ColorBlue)
			case v.terrain.IsSolid(px, py):
				c := core.ColorBrown
				if !v.terrain.IsSolid(px, py-sy) {
					c = core.ColorGreen
				}
				s.SetColored(cx, cy, runeGround, c)
			}
		}
	}

	cell := func(p core.Point) (int, int) {
		return int(p.X / sx), int(p.Y / sy)
	}

	for _, p := range v.trail {
		x, y := cell(p)
		s.SetColored(x, y, runeTrail, core.ColorYellow)
	}
	for _, b := range v.blasts {
		x, y := cell(core.Point{X: b.X, Y: b.Y})
		s.SetColored(x, y, runeBlast, core.ColorOrange)
	}
	for _, worm := range v.worms {
		if !worm.Alive {
			continue
		}
		r := runeWorm
		if worm.ID == v.activeWorm {
			r = runeActive
		}
		x, y := cell(core.Point{X: worm.X, Y: worm.Y})
		s.SetColored(x, y, r, v.teamColor(worm.TeamID))
	}
}
