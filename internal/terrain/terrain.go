// Package terrain implements the destructible pixel map a match is fought on.
//
// The map is a packed 1-bit grid: a set bit is solid ground, a clear bit is
// air. Cells outside the grid always read as air. After generation the grid
// only ever loses ground.
package terrain

import "math"

// Terrain is a width x height occupancy grid with a water line.
type Terrain struct {
	width  int
	height int
	water  int
	stride int
	bits   []byte
}

// New returns an all-air terrain. Rows at or below water are drowned.
func New(width, height, water int) *Terrain {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	stride := (width + 7) / 8
	return &Terrain{
		width:  width,
		height: height,
		water:  water,
		stride: stride,
		bits:   make([]byte, stride*height),
	}
}

// Width returns the grid width in cells.
func (t *Terrain) Width() int { return t.width }

// Height returns the grid height in cells.
func (t *Terrain) Height() int { return t.height }

// WaterLevel returns the y coordinate of the water line.
func (t *Terrain) WaterLevel() int { return t.water }

func (t *Terrain) maskIndex(x, y int) (byte, int) {
	return 1 << uint(x&7), y*t.stride + x>>3
}

func (t *Terrain) in(x, y int) bool {
	return x >= 0 && x < t.width && y >= 0 && y < t.height
}

func (t *Terrain) at(x, y int) bool {
	if !t.in(x, y) {
		return false
	}
	mask, index := t.maskIndex(x, y)
	return t.bits[index]&mask != 0
}

func (t *Terrain) set(x, y int, solid bool) {
	if !t.in(x, y) {
		return
	}
	mask, index := t.maskIndex(x, y)
	if solid {
		t.bits[index] |= mask
	} else {
		t.bits[index] &^= mask
	}
}

// IsSolid reports whether the cell containing (x, y) is ground.
func (t *Terrain) IsSolid(x, y float64) bool {
	return t.at(floor(x), floor(y))
}

// Set marks the cell containing (x, y) as solid or air. Out of range is ignored.
func (t *Terrain) Set(x, y float64, solid bool) {
	t.set(floor(x), floor(y), solid)
}

// DestroyCircle clears every solid cell within r of (floor(cx), floor(cy))
// and returns how many cells were cleared.
func (t *Terrain) DestroyCircle(cx, cy, r float64) int {
	if r < 0 {
		return 0
	}
	ri := int(math.Ceil(r))
	r2 := r * r
	ox, oy := floor(cx), floor(cy)
	destroyed := 0
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) > r2 {
				continue
			}
			px, py := ox+dx, oy+dy
			if t.at(px, py) {
				t.set(px, py, false)
				destroyed++
			}
		}
	}
	return destroyed
}

// SurfaceY returns the first solid row in column x scanning downward, or the
// grid height when the column is empty or out of range.
func (t *Terrain) SurfaceY(x float64) int {
	ix := floor(x)
	if ix < 0 || ix >= t.width {
		return t.height
	}
	for y := 0; y < t.height; y++ {
		if t.at(ix, y) {
			return y
		}
	}
	return t.height
}

// DropWorm lowers a body of the given radius from startY until the cell just
// below its feet is solid or the water line is reached. It returns the
// settled y and the distance fallen.
func (t *Terrain) DropWorm(x, startY, radius float64) (y, fall float64) {
	y = startY
	for y < float64(t.water) {
		if t.IsSolid(x, y+radius+1) {
			break
		}
		y++
	}
	return y, math.Max(0, y-math.Floor(startY))
}

// SolidCount returns the number of solid cells.
func (t *Terrain) SolidCount() int {
	n := 0
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			if t.at(x, y) {
				n++
			}
		}
	}
	return n
}

// Clone returns an independent copy.
func (t *Terrain) Clone() *Terrain {
	c := *t
	c.bits = append([]byte(nil), t.bits...)
	return &c
}

// Equal reports whether two terrains have identical dimensions and cells.
func (t *Terrain) Equal(o *Terrain) bool {
	if t.width != o.width || t.height != o.height {
		return false
	}
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			if t.at(x, y) != o.at(x, y) {
				return false
			}
		}
	}
	return true
}

func floor(v float64) int {
	return int(math.Floor(v))
}
