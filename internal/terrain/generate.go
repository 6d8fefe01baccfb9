package terrain

import (
	"math"

	"github.com/vovakirdan/worms-arena/internal/rng"
)

const octaves = 5

// cave is a circular hole carved after the height field is filled.
type cave struct {
	x, y, r int
}

// Generate builds a fresh map from the match RNG: a layered sine height
// field filled down to the water line, then a few circular caves.
// The same RNG state always yields the same map.
func Generate(r *rng.RNG, width, height, water int) *Terrain {
	t, _, _ := generate(r, width, height, water)
	return t
}

func generate(r *rng.RNG, width, height, water int) (*Terrain, []int, []cave) {
	t := New(width, height, water)
	surface := heightField(r, width, height)

	for x, surf := range surface {
		for y := surf; y < water; y++ {
			t.set(x, y, true)
		}
	}

	caves := make([]cave, r.Int(2, 5))
	for i := range caves {
		caves[i] = cave{
			x: r.Int(100, width-100),
			y: r.Int(height/2, water-30),
			r: r.Int(15, 40),
		}
		t.DestroyCircle(float64(caves[i].x), float64(caves[i].y), float64(caves[i].r))
	}

	return t, surface, caves
}

// heightField returns the surface row of every column.
func heightField(r *rng.RNG, width, height int) []int {
	base := float64(height) * 0.45
	var amp, freq, phase [octaves]float64
	for o := 0; o < octaves; o++ {
		amp[o] = r.Range(30, 80) / float64(o+1)
		freq[o] = r.Range(0.002, 0.008) * float64(o+1)
		phase[o] = r.Range(0, math.Pi*2)
	}

	surface := make([]int, width)
	for x := range surface {
		h := base
		for o := 0; o < octaves; o++ {
			h += amp[o] * math.Sin(float64(x)*freq[o]+phase[o])
		}
		h = math.Max(60, math.Min(float64(height-40), h))
		surface[x] = int(math.Floor(float64(height) - h))
	}
	return surface
}
